package repository

import (
	"context"
	"testing"
	"time"

	"recipe-api/internal/config"
	"recipe-api/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// backend is a repository under test plus a hook to wipe its data.
type backend struct {
	name      string
	repo      RecipeRepository
	reset     func(t *testing.T)
	missingID string
}

// setupPostgres starts a PostgreSQL container and returns a JSONB-backed repository.
func setupPostgres(t *testing.T) backend {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPoolFromURL(ctx, connStr, config.DatabaseConfig{
		MaxConnections: 5,
		MinConnections: 1,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.EnsureSchema(ctx, pool))

	return backend{
		name: "postgres",
		repo: NewPostgresRecipeRepository(pool, zerolog.Nop()),
		reset: func(t *testing.T) {
			_, err := pool.Exec(ctx, "DELETE FROM recipes")
			require.NoError(t, err)
		},
		missingID: "6f1c1c2e-8f0b-4a43-9a4e-2a3b7d1f0c11",
	}
}

// setupMongo starts a MongoDB container and returns a collection-backed repository.
func setupMongo(t *testing.T) backend {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mongoContainer.Terminate(ctx) })

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := database.NewMongoClient(ctx, config.MongoConfig{
		URI:            uri,
		Database:       "testdb",
		Collection:     "recipes",
		ConnectTimeout: 30 * time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	collection := client.Database("testdb").Collection("recipes")

	return backend{
		name: "mongo",
		repo: NewMongoRecipeRepository(collection, zerolog.Nop()),
		reset: func(t *testing.T) {
			_, err := collection.DeleteMany(ctx, bson.D{})
			require.NoError(t, err)
		},
		missingID: "507f1f77bcf86cd799439011",
	}
}

func backends(t *testing.T) []backend {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed repository tests")
	}
	return []backend{setupMongo(t), setupPostgres(t)}
}
