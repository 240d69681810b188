package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/toyshub/internal/api"
	"github.com/example/toyshub/internal/auth"
	"github.com/example/toyshub/internal/domain/catalog"
	"github.com/example/toyshub/internal/domain/notification"
	"github.com/example/toyshub/internal/domain/order"
	"github.com/example/toyshub/internal/domain/page"
	"github.com/example/toyshub/internal/infrastructure/store/mocks"
)

// fakeUploader hands out deterministic URLs without a network hop.
type fakeUploader struct {
	count int
}

func (u *fakeUploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	u.count++
	return fmt.Sprintf("https://cdn.example.com/%d-%s", u.count, filename), nil
}

type testServer struct {
	handler       http.Handler
	tokens        *auth.TokenService
	products      *mocks.MemoryProducts
	notifications *notification.Service
	userToken     string
	adminToken    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	products := mocks.NewMemoryProducts()
	categories := mocks.NewMemoryCategories()
	orders := mocks.NewMemoryOrders()
	notifications := mocks.NewMemoryNotifications()
	pages := mocks.NewMemoryPages()

	catalogSvc := catalog.NewService(products, categories, nil)
	orderSvc := order.NewService(orders, products, nil, order.Pricing{
		ShippingFlatFee: decimal.NewFromInt(50),
		FreeShippingMin: decimal.NewFromInt(999),
		CODCharge:       decimal.NewFromInt(40),
	})
	notificationSvc := notification.NewService(notifications)
	pageSvc := page.NewService(pages)

	tokens := auth.NewTokenService("test-secret-key-for-testing-purposes", 15*time.Minute)
	handlers := api.NewHandlers(catalogSvc, orderSvc, notificationSvc, pageSvc, &fakeUploader{}, nil)

	userToken, _, err := tokens.Mint("user-1", "user@example.com", auth.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tokens.Mint("admin-1", "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	return &testServer{
		handler:       api.NewRouter(handlers, tokens),
		tokens:        tokens,
		products:      products,
		notifications: notificationSvc,
		userToken:     userToken,
		adminToken:    adminToken,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func (s *testServer) createProduct(t *testing.T, name, sku string, price int64, fields map[string]string) map[string]any {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", name))
	require.NoError(t, writer.WriteField("sku", sku))
	require.NoError(t, writer.WriteField("price", fmt.Sprintf("%d", price)))
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/product", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	r.Header.Set("Authorization", "Bearer "+s.adminToken)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/product", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/product", s.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	s := newTestServer(t)

	s.createProduct(t, "Hoverboard X", "HX-1", 2999, nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "Hoverboard X Pro"))
	require.NoError(t, writer.WriteField("sku", "HX-1"))
	require.NoError(t, writer.WriteField("price", "3499"))
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/product", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	r.Header.Set("Authorization", "Bearer "+s.adminToken)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["message"], "already exists")
	assert.Equal(t, 1, s.products.Len())
}

func TestListProducts_Pagination(t *testing.T) {
	s := newTestServer(t)
	for i := 1; i <= 5; i++ {
		s.createProduct(t, fmt.Sprintf("Toy %d", i), fmt.Sprintf("T-%d", i), 100, nil)
	}

	w := s.do(t, http.MethodGet, "/product?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(5), resp["total"])
	assert.Equal(t, float64(2), resp["page"])
	assert.Equal(t, float64(3), resp["pages"])
	assert.Len(t, resp["products"], 2)
}

func TestGetProduct_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/product/missing-id", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "product not found", resp["message"])
}

func TestGetProduct_DecodesSpecifications(t *testing.T) {
	s := newTestServer(t)
	created := s.createProduct(t, "Scooter", "SC-1", 1500, map[string]string{
		"specifications": `[{"key":"Weight","value":"5kg"}]`,
	})
	id := created["product"].(map[string]any)["id"].(string)

	w := s.do(t, http.MethodGet, "/product/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	product := decodeBody(t, w)["product"].(map[string]any)
	specs := product["specifications"].([]any)
	require.Len(t, specs, 1)
	entry := specs[0].(map[string]any)
	assert.Equal(t, "Weight", entry["key"])
	assert.Equal(t, "5kg", entry["value"])
}

func TestAddReview_AnonymousAllowed(t *testing.T) {
	s := newTestServer(t)
	created := s.createProduct(t, "Kite", "K-1", 149, nil)
	id := created["product"].(map[string]any)["id"].(string)

	w := s.do(t, http.MethodPost, "/product/"+id+"/review", "", map[string]any{
		"rating":  4,
		"comment": "Flies well",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviews := decodeBody(t, w)["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Anonymous", reviews[0].(map[string]any)["name"])
}

func TestAddReview_BadRating(t *testing.T) {
	s := newTestServer(t)
	created := s.createProduct(t, "Kite", "K-1", 149, nil)
	id := created["product"].(map[string]any)["id"].(string)

	w := s.do(t, http.MethodPost, "/product/"+id+"/review", "", map[string]any{"rating": 9})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	created := s.createProduct(t, "Racer", "R-1", 500, nil)
	id := created["product"].(map[string]any)["id"].(string)

	w := s.do(t, http.MethodPost, "/order", s.userToken, map[string]any{
		"items":         []map[string]any{{"productId": id, "quantity": 2}},
		"paymentMethod": "COD",
		"shippingAddress": map[string]any{
			"name":  "Asha",
			"email": "asha@example.com",
			"city":  "Pune",
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decodeBody(t, w)["order"].(map[string]any)
	assert.Equal(t, "1000", o["totalAmount"])
	assert.Equal(t, "0", o["shippingAmount"])
	assert.Equal(t, "40", o["codCharge"])
	assert.Equal(t, "1040", o["grandTotal"])
	assert.Equal(t, "pending", o["orderStatus"])
	assert.Equal(t, "user-1", o["userId"])

	stamps := o["statusTimestamps"].(map[string]any)
	assert.Contains(t, stamps, "pending")
	assert.Len(t, stamps, 1)
}

func TestCheckout_RequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/order", "", map[string]any{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderStatusFlow(t *testing.T) {
	s := newTestServer(t)
	created := s.createProduct(t, "Racer", "R-1", 500, nil)
	id := created["product"].(map[string]any)["id"].(string)

	w := s.do(t, http.MethodPost, "/order", s.userToken, map[string]any{
		"items": []map[string]any{{"productId": id, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeBody(t, w)["order"].(map[string]any)["id"].(string)

	// Only admins may update status.
	w = s.do(t, http.MethodPut, "/order/update-status", s.userToken, map[string]any{
		"orderId": orderID, "newStatus": "shipped",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPut, "/order/update-status", s.adminToken, map[string]any{
		"orderId": orderID, "newStatus": "shipped",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	o := decodeBody(t, w)["order"].(map[string]any)
	assert.Equal(t, "shipped", o["orderStatus"])

	w = s.do(t, http.MethodPut, "/order/update-status", s.adminToken, map[string]any{
		"orderId": orderID, "newStatus": "returned",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The user sees their own orders; the admin list shows everything.
	w = s.do(t, http.MethodGet, "/order/user", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["orders"], 1)

	w = s.do(t, http.MethodGet, "/order", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["orders"], 1)
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/category", s.adminToken, map[string]any{
		"name": "Outdoor", "description": "Outdoor toys",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["category"].(map[string]any)["id"].(string)

	w = s.do(t, http.MethodGet, "/category", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["categories"], 1)

	w = s.do(t, http.MethodDelete, "/category/"+id, s.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/category", "", nil)
	assert.Len(t, decodeBody(t, w)["categories"], 0)
}

func TestPageRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/page/about-us", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/page/about-us", s.adminToken, map[string]any{
		"title": "About Us",
		"body":  map[string]any{"blocks": []any{}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/page/about-us", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decodeBody(t, w)["page"].(map[string]any)
	assert.Equal(t, "about-us", p["slug"])
	assert.Equal(t, "About Us", p["title"])
}

func TestNotificationRoutes(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	mine, err := s.notifications.CreateForUser(ctx, "user-1", "Order update", "Your order shipped", "order")
	require.NoError(t, err)
	_, err = s.notifications.CreateForAdmins(ctx, "New order", "Order placed", "order")
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/notification/user", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["notifications"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, false, list[0].(map[string]any)["isRead"])

	// Admin broadcasts are not visible on the user feed.
	w = s.do(t, http.MethodGet, "/notification/admin", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["notifications"], 1)

	w = s.do(t, http.MethodPatch, "/notification/"+mine.ID+"/read", s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/notification/user", s.userToken, nil)
	list = decodeBody(t, w)["notifications"].([]any)
	assert.Equal(t, true, list[0].(map[string]any)["isRead"])

	// The recipient deletes their own notification; no admin role needed.
	w = s.do(t, http.MethodDelete, "/notification/"+mine.ID, s.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/notification/user", s.userToken, nil)
	assert.Len(t, decodeBody(t, w)["notifications"], 0)
}

func TestDeleteNotification_RequiresAuthOnly(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	mine, err := s.notifications.CreateForUser(ctx, "user-1", "Order update", "Your order shipped", "order")
	require.NoError(t, err)

	w := s.do(t, http.MethodDelete, "/notification/"+mine.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodDelete, "/notification/"+mine.ID, s.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, "/notification/"+mine.ID, s.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPatch, "/product", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
