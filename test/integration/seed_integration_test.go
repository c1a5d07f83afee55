package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"recipe-api/internal/model"
	"recipe-api/internal/seed"
	"recipe-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	store := SetupMongoStore(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "classics.json")
	yamlPath := filepath.Join(dir, "desserts.yaml")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
		{"title":"Tea","author":"Ann","difficulty":"Easy","instructions":"boil"},
		{"title":"Soup","author":"Ann","difficulty":"Medium"}
	]`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- title: Cake
  author: Bob
  difficulty: Hard
  ingredients: [flour, sugar, eggs]
  instructions:
    - mix
    - bake
`), 0o600))

	seeder := seed.NewSeeder(seed.NewFileLoader(logger), service.NewRecipeService(store.Repo, logger), logger)

	created, err := seeder.Seed(ctx, []string{jsonPath, yamlPath})
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	server := NewTestServer(store)

	w := do(t, server, http.MethodGet, "/recipes/author/Ann", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byAnn []model.Recipe
	require.NoError(t, json.NewDecoder(w.Body).Decode(&byAnn))
	assert.Len(t, byAnn, 2)

	w = do(t, server, http.MethodGet, "/recipes/Cake", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cake model.Recipe
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cake))
	assert.Equal(t, []string{"flour", "sugar", "eggs"}, cake.Ingredients)
	assert.Equal(t, model.Instructions{"mix", "bake"}, cake.Instructions)

	w = do(t, server, http.MethodGet, "/recipes/Tea", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tea model.Recipe
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tea))
	assert.Equal(t, model.Instructions{"boil"}, tea.Instructions)
}
