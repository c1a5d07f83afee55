package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// recipeBody is the JSONB document stored per row. Identifier and timestamps
// live in their own columns.
type recipeBody struct {
	Title        string             `json:"title"`
	Author       string             `json:"author"`
	Ingredients  []string           `json:"ingredients"`
	Difficulty   string             `json:"difficulty"`
	PrepTime     float64            `json:"prepTime"`
	CookTime     float64            `json:"cookTime"`
	Instructions model.Instructions `json:"instructions"`
}

const recipeColumns = "id, document, created_at, updated_at"

// postgresRecipeRepository implements RecipeRepository on a JSONB table.
type postgresRecipeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresRecipeRepository creates a PostgreSQL-backed recipe repository.
// The recipes table must exist, see database.EnsureSchema.
func NewPostgresRecipeRepository(pool *pgxpool.Pool, logger zerolog.Logger) RecipeRepository {
	return &postgresRecipeRepository{
		pool: pool,
		logger: logger.With().
			Str("repository", "recipe").
			Str("store", "postgres").
			Logger(),
	}
}

// Create inserts a new recipe row.
func (r *postgresRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	query := `
		INSERT INTO recipes (id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING ` + recipeColumns

	body := recipeBody{
		Title:        recipe.Title,
		Author:       recipe.Author,
		Ingredients:  recipe.Ingredients,
		Difficulty:   recipe.Difficulty,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Instructions: recipe.Instructions,
	}

	created, err := scanRecipe(r.pool.QueryRow(ctx, query, uuid.New(), body, time.Now().UTC()))
	if err != nil {
		r.logger.Error().Err(err).Str("title", recipe.Title).Msg("failed to insert recipe")
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	r.logger.Debug().Str("recipe_id", created.ID).Msg("recipe created")

	return created, nil
}

// FindAll returns every recipe ordered by creation time.
func (r *postgresRecipeRepository) FindAll(ctx context.Context) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at, id`
	return r.queryMany(ctx, query)
}

// FindByTitle returns the earliest recipe whose title matches exactly.
func (r *postgresRecipeRepository) FindByTitle(ctx context.Context, title string) (*model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE document->>'title' = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	return r.queryOne(ctx, query, title)
}

// FindByAuthor returns all recipes by author.
func (r *postgresRecipeRepository) FindByAuthor(ctx context.Context, author string) ([]model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE document->>'author' = $1
		ORDER BY created_at, id
	`
	return r.queryMany(ctx, query, author)
}

// FindByDifficulty returns all recipes with the given difficulty.
func (r *postgresRecipeRepository) FindByDifficulty(ctx context.Context, level string) ([]model.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE document->>'difficulty' = $1
		ORDER BY created_at, id
	`
	return r.queryMany(ctx, query, level)
}

// FindByID returns the recipe with the given UUID.
func (r *postgresRecipeRepository) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	rid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	return r.queryOne(ctx, query, rid)
}

// UpdateByID merges patch into the recipe document with the given UUID.
func (r *postgresRecipeRepository) UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error) {
	rid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE recipes
		SET document = document || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + recipeColumns
	return r.queryOne(ctx, query, rid, nonNilPatch(patch))
}

// UpdateByTitle merges patch into the earliest recipe matching title.
func (r *postgresRecipeRepository) UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error) {
	query := `
		UPDATE recipes
		SET document = document || $2::jsonb, updated_at = NOW()
		WHERE id = (
			SELECT id FROM recipes
			WHERE document->>'title' = $1
			ORDER BY created_at, id
			LIMIT 1
		)
		RETURNING ` + recipeColumns
	return r.queryOne(ctx, query, title, nonNilPatch(patch))
}

// DeleteByID removes the recipe with the given UUID.
func (r *postgresRecipeRepository) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	rid, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	query := `DELETE FROM recipes WHERE id = $1 RETURNING ` + recipeColumns
	return r.queryOne(ctx, query, rid)
}

// Ping checks the pool can reach the database.
func (r *postgresRecipeRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *postgresRecipeRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Recipe, error) {
	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}
	return recipe, nil
}

func (r *postgresRecipeRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recipe row")
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recipe rows")
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*model.Recipe, error) {
	var (
		id        uuid.UUID
		body      recipeBody
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &body, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return (&model.Recipe{
		ID:           id.String(),
		Title:        body.Title,
		Author:       body.Author,
		Ingredients:  body.Ingredients,
		Difficulty:   body.Difficulty,
		PrepTime:     body.PrepTime,
		CookTime:     body.CookTime,
		Instructions: body.Instructions,
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}).EnsureSlices(), nil
}

// nonNilPatch keeps a nil patch from encoding as JSON null, which would turn
// the merge into an array append.
func nonNilPatch(patch *model.RecipePatch) *model.RecipePatch {
	if patch == nil {
		return &model.RecipePatch{}
	}
	return patch
}

func parseUUID(id string) (uuid.UUID, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", model.ErrInvalidRecipeID, id)
	}
	return rid, nil
}
