package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/star-tournaments/pkg/cache"
	"github.com/chris/star-tournaments/pkg/handlers"
	wshandlers "github.com/chris/star-tournaments/pkg/handlers/websockets"
	appmiddleware "github.com/chris/star-tournaments/pkg/middleware"
	"github.com/chris/star-tournaments/pkg/registration"
	"github.com/chris/star-tournaments/pkg/scheduler"
	"github.com/chris/star-tournaments/pkg/storage"
	dydbstore "github.com/chris/star-tournaments/pkg/storage/dynamodb"
	memstore "github.com/chris/star-tournaments/pkg/storage/memory"
	"github.com/chris/star-tournaments/pkg/websockets"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

// appStore is the full surface the API server needs from a backend.
type appStore interface {
	storage.Storage
	storage.WebSocketManager
}

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	store := newStore()
	c := newCache()
	publisher := newPublisher(store)

	registrations := registration.New(store, c, publisher, handlers.DefaultStartingBalance)
	handler := handlers.NewApiHandler(store, c, registrations, publisher)
	wsHandler := wshandlers.NewHandler(storeConnectionManager{store})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(appmiddleware.NewStructuredLogger(logger))

	router.Handle("/ws", wsHandler)
	router.Mount("/", handler.Routes())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newStore picks the storage backend. STORAGE_BACKEND=memory runs everything
// in process for local development; anything else means DynamoDB.
func newStore() appStore {
	if os.Getenv("STORAGE_BACKEND") == "memory" {
		log.Println("Using in-memory storage backend")
		return memstore.New()
	}

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	tournamentsTable := os.Getenv("DYNAMODB_TOURNAMENTS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if tournamentsTable == "" || usersTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	return dydbstore.New(dbClient, sqsScheduler, tournamentsTable, usersTable, connectionsTable)
}

// newCache picks the cache layer. REDIS_ADDR selects Redis; otherwise reads
// are cached in process.
func newCache() cache.Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("Using in-memory cache")
		return cache.NewMemoryCache(time.Minute)
	}

	c, err := cache.NewRedisCache(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		log.Fatalf("unable to connect to redis at %s: %v", addr, err)
	}
	log.Printf("Using redis cache at %s", addr)
	return c
}

// newPublisher builds the notification fan-out. Without a configured
// websocket API endpoint, notifications are dropped.
func newPublisher(store appStore) websockets.Publisher {
	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if apiEndpoint == "" {
		log.Println("WEBSOCKET_API_ENDPOINT not set, notifications disabled")
		return &websockets.NoOpPublisher{}
	}

	publisher, err := websockets.NewPublisher(store, storeConnectionManager{store}, apiEndpoint)
	if err != nil {
		log.Fatalf("unable to create websocket publisher: %v", err)
	}
	return publisher
}

// storeConnectionManager adapts the storage connection registry to the
// websockets package interface.
type storeConnectionManager struct {
	store storage.WebSocketManager
}

func (m storeConnectionManager) AddConnection(ctx context.Context, connectionID string) error {
	return m.store.AddConnection(ctx, connectionID)
}

func (m storeConnectionManager) RemoveConnection(ctx context.Context, connectionID string) error {
	return m.store.RemoveConnection(ctx, connectionID)
}
