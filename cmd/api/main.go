package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/shopspring/decimal"

	"github.com/example/toyshub/internal/api"
	"github.com/example/toyshub/internal/auth"
	"github.com/example/toyshub/internal/config"
	"github.com/example/toyshub/internal/domain/catalog"
	domnotification "github.com/example/toyshub/internal/domain/notification"
	"github.com/example/toyshub/internal/domain/order"
	"github.com/example/toyshub/internal/domain/page"
	"github.com/example/toyshub/internal/infrastructure/kafka"
	"github.com/example/toyshub/internal/infrastructure/store"
	"github.com/example/toyshub/internal/media"
	"github.com/example/toyshub/internal/notification"
	"github.com/example/toyshub/internal/realtime"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Failed to load config: %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Toys-Hub Storefront API")
	log.Println("[API] ========================================")
	log.Printf("[API] Kafka: %v", cfg.Kafka.Brokers)
	log.Printf("[API] Topic: %s", cfg.Kafka.Topic)
	log.Printf("[API] Notification store: %s", cfg.Notify.Store)

	// Kafka producer
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	// PostgreSQL
	db, err := store.ConnectPostgres(cfg.Database.URL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	if err := store.EnsureSchema(db); err != nil {
		log.Fatalf("[API] Failed to ensure schema: %v", err)
	}
	log.Println("[API] Connected to PostgreSQL")

	// Stores
	productStore := store.NewPostgresProducts(db)
	categoryStore := store.NewPostgresCategories(db)
	orderStore := store.NewPostgresOrders(db)
	pageStore := store.NewPostgresPages(db)

	var notificationStore domnotification.Store
	switch cfg.Notify.Store {
	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("[API] Failed to load AWS config: %v", err)
		}
		notificationStore = store.NewDynamoNotifications(dynamodb.NewFromConfig(awsCfg), cfg.Notify.DynamoTable)
		log.Printf("[API] Notifications in DynamoDB table %s", cfg.Notify.DynamoTable)
	default:
		notificationStore = store.NewPostgresNotifications(db)
	}

	// Domain services
	catalogSvc := catalog.NewService(productStore, categoryStore, producer)
	orderSvc := order.NewService(orderStore, productStore, producer, order.Pricing{
		ShippingFlatFee: decimal.NewFromInt(cfg.Pricing.ShippingFlatFee),
		FreeShippingMin: decimal.NewFromInt(cfg.Pricing.FreeShippingMin),
		CODCharge:       decimal.NewFromInt(cfg.Pricing.CODCharge),
	})
	notificationSvc := domnotification.NewService(notificationStore)
	pageSvc := page.NewService(pageStore)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry)
	uploader := media.NewHTTPUploader(cfg.Assets.UploadURL, cfg.Assets.Timeout)
	hub := realtime.NewHub()

	// Notification relay consumes domain events in-process
	relay := notification.NewRelay(notificationSvc, hub)
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, "api-relay")
	defer consumer.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("[API] Starting notification relay consumer...")
		if err := consumer.Consume(ctx, relay.Handle); err != nil {
			if ctx.Err() == nil {
				log.Printf("[API] Relay error: %v", err)
			}
		}
	}()

	// HTTP server
	handlers := api.NewHandlers(catalogSvc, orderSvc, notificationSvc, pageSvc, uploader, hub)
	router := api.NewRouter(handlers, tokens)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	wg.Wait()
}
