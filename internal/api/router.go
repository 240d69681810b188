package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/toyshub/internal/api/middleware"
	"github.com/example/toyshub/internal/auth"
)

func NewRouter(handlers *Handlers, tokens *auth.TokenService) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Auth(tokens)
	optional := middleware.OptionalAuth(tokens)
	admin := func(h http.Handler) http.Handler {
		return authed(middleware.RequireRole(auth.RoleAdmin)(h))
	}

	mux.HandleFunc("/health", handlers.Health)

	// Products
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.ListProducts(w, r)
		case http.MethodPost:
			admin(http.HandlerFunc(handlers.CreateProduct)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/product/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/review") && r.Method == http.MethodPost:
			optional(http.HandlerFunc(handlers.AddReview)).ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			handlers.GetProduct(w, r)
		case r.Method == http.MethodPut:
			admin(http.HandlerFunc(handlers.UpdateProduct)).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			admin(http.HandlerFunc(handlers.DeleteProduct)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Orders
	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authed(http.HandlerFunc(handlers.Checkout)).ServeHTTP(w, r)
		case http.MethodGet:
			admin(http.HandlerFunc(handlers.ListAllOrders)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/order/user", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authed(http.HandlerFunc(handlers.ListUserOrders)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/order/update-status", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			admin(http.HandlerFunc(handlers.UpdateOrderStatus)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Categories
	mux.HandleFunc("/category", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.ListCategories(w, r)
		case http.MethodPost:
			admin(http.HandlerFunc(handlers.CreateCategory)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/category/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			admin(http.HandlerFunc(handlers.UpdateCategory)).ServeHTTP(w, r)
		case http.MethodDelete:
			admin(http.HandlerFunc(handlers.DeleteCategory)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Notifications
	mux.HandleFunc("/notification/user", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authed(http.HandlerFunc(handlers.ListUserNotifications)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/notification/admin", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			admin(http.HandlerFunc(handlers.ListAdminNotifications)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/notification/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case strings.HasSuffix(path, "/read") && r.Method == http.MethodPatch:
			authed(http.HandlerFunc(handlers.MarkNotificationRead)).ServeHTTP(w, r)
		case r.Method == http.MethodDelete:
			authed(http.HandlerFunc(handlers.DeleteNotification)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Pages
	mux.HandleFunc("/page/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetPage(w, r)
		case http.MethodPut:
			admin(http.HandlerFunc(handlers.SavePage)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	// Realtime
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authed(http.HandlerFunc(handlers.Events)).ServeHTTP(w, r)
		default:
			respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	return withLogging(mux)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
