package seed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"recipe-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecipeCreator is a mock implementation of RecipeCreator.
type MockRecipeCreator struct {
	mock.Mock
}

func (m *MockRecipeCreator) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// mapLoader serves fixed recipe lists by path.
type mapLoader struct {
	mu    sync.Mutex
	files map[string][]model.Recipe
	seen  []string
}

func (l *mapLoader) Load(ctx context.Context, path string) ([]model.Recipe, error) {
	l.mu.Lock()
	l.seen = append(l.seen, path)
	l.mu.Unlock()

	recipes, ok := l.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return recipes, nil
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	loader := &mapLoader{files: map[string][]model.Recipe{
		"a.json": {{Title: "A1"}, {Title: "A2"}},
		"b.yaml": {{Title: "B1"}},
		"c.json": {},
	}}

	creator := new(MockRecipeCreator)
	var order []string
	creator.On("Create", ctx, mock.AnythingOfType("*model.Recipe")).
		Run(func(args mock.Arguments) {
			order = append(order, args.Get(1).(*model.Recipe).Title)
		}).
		Return(&model.Recipe{ID: "x"}, nil)

	seeder := NewSeeder(loader, creator, zerolog.Nop())

	created, err := seeder.Seed(ctx, []string{"a.json", "b.yaml", "c.json"})

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, []string{"A1", "A2", "B1"}, order)
	assert.ElementsMatch(t, []string{"a.json", "b.yaml", "c.json"}, loader.seen)
}

func TestSeeder_Seed_LoadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	loader := &mapLoader{files: map[string][]model.Recipe{
		"a.json": {{Title: "A1"}},
	}}

	creator := new(MockRecipeCreator)
	seeder := NewSeeder(loader, creator, zerolog.Nop())

	created, err := seeder.Seed(ctx, []string{"a.json", "missing.json"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
	assert.Zero(t, created)
	creator.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeeder_Seed_CreateFailureStops(t *testing.T) {
	ctx := context.Background()
	loader := &mapLoader{files: map[string][]model.Recipe{
		"a.json": {{Title: "A1"}, {Title: "A2"}, {Title: "A3"}},
	}}

	creator := new(MockRecipeCreator)
	creator.On("Create", ctx, mock.MatchedBy(func(r *model.Recipe) bool { return r.Title == "A1" })).
		Return(&model.Recipe{ID: "1"}, nil).Once()
	creator.On("Create", ctx, mock.MatchedBy(func(r *model.Recipe) bool { return r.Title == "A2" })).
		Return(nil, errors.New("database error")).Once()

	seeder := NewSeeder(loader, creator, zerolog.Nop())

	created, err := seeder.Seed(ctx, []string{"a.json"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"A2"`)
	assert.Equal(t, 1, created)
	creator.AssertExpectations(t)
}

func TestSeeder_Seed_NoPaths(t *testing.T) {
	seeder := NewSeeder(&mapLoader{}, new(MockRecipeCreator), zerolog.Nop())

	created, err := seeder.Seed(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, created)
}
