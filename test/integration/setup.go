package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"recipe-api/internal/config"
	"recipe-api/internal/database"
	"recipe-api/internal/handler"
	"recipe-api/internal/repository"
	"recipe-api/internal/router"
	"recipe-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// TestStore is a recipe store running in a container.
type TestStore struct {
	Name  string
	Repo  repository.RecipeRepository
	Reset func(t *testing.T)
}

// SetupMongoStore starts a MongoDB container and returns a store backed by it.
func SetupMongoStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	mongoConfig := config.MongoConfig{
		URI:            uri,
		Database:       "testdb",
		Collection:     "recipes",
		ConnectTimeout: 30 * time.Second,
	}

	client, err := database.NewMongoClient(ctx, mongoConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	collection := client.Database(mongoConfig.Database).Collection(mongoConfig.Collection)

	return &TestStore{
		Name: config.DriverMongo,
		Repo: repository.NewMongoRecipeRepository(collection, zerolog.Nop()),
		Reset: func(t *testing.T) {
			t.Helper()
			if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
				t.Fatalf("failed to clean collection: %v", err)
			}
		},
	}
}

// SetupPostgresStore starts a PostgreSQL container and returns a store backed by it.
func SetupPostgresStore(t *testing.T) *TestStore {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestStore{
		Name: config.DriverPostgres,
		Repo: repository.NewPostgresRecipeRepository(pool, zerolog.Nop()),
		Reset: func(t *testing.T) {
			t.Helper()
			if _, err := pool.Exec(ctx, "DELETE FROM recipes"); err != nil {
				t.Fatalf("failed to clean table: %v", err)
			}
		},
	}
}

// SetupStores starts every supported backend.
func SetupStores(t *testing.T) []*TestStore {
	t.Helper()
	return []*TestStore{SetupMongoStore(t), SetupPostgresStore(t)}
}

// NewTestServer wires the full HTTP stack over store.
func NewTestServer(store *TestStore) http.Handler {
	logger := zerolog.Nop()

	recipeService := service.NewRecipeService(store.Repo, logger)

	return router.New(
		handler.NewRecipeHandler(recipeService, logger),
		handler.NewHealthHandler(recipeService, 5*time.Second),
		router.Options{AllowedOrigins: []string{"*"}},
		logger,
	)
}
