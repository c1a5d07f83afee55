package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-api/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// recipeDocument is the BSON shape of a recipe in the collection.
type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Author       string             `bson:"author"`
	Ingredients  []string           `bson:"ingredients"`
	Difficulty   string             `bson:"difficulty"`
	PrepTime     float64            `bson:"prepTime"`
	CookTime     float64            `bson:"cookTime"`
	Instructions []string           `bson:"instructions"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *recipeDocument) toModel() *model.Recipe {
	return (&model.Recipe{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Author:       d.Author,
		Ingredients:  d.Ingredients,
		Difficulty:   d.Difficulty,
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Instructions: model.Instructions(d.Instructions),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}).EnsureSlices()
}

// mongoRecipeRepository implements RecipeRepository on a MongoDB collection.
type mongoRecipeRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewMongoRecipeRepository creates a MongoDB-backed recipe repository.
func NewMongoRecipeRepository(collection *mongo.Collection, logger zerolog.Logger) RecipeRepository {
	return &mongoRecipeRepository{
		collection: collection,
		logger: logger.With().
			Str("repository", "recipe").
			Str("store", "mongo").
			Logger(),
	}
}

// firstMatch sorts by _id so "first" means earliest inserted.
var firstMatch = bson.D{{Key: "_id", Value: 1}}

// Create inserts a new recipe document.
func (r *mongoRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := recipeDocument{
		Title:        recipe.Title,
		Author:       recipe.Author,
		Ingredients:  recipe.Ingredients,
		Difficulty:   recipe.Difficulty,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Instructions: recipe.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("title", recipe.Title).Msg("failed to insert recipe")
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	doc.ID = id

	r.logger.Debug().Str("recipe_id", id.Hex()).Msg("recipe created")

	return doc.toModel(), nil
}

// FindAll returns every recipe in natural order.
func (r *mongoRecipeRepository) FindAll(ctx context.Context) ([]model.Recipe, error) {
	return r.findMany(ctx, bson.D{})
}

// FindByTitle returns the first recipe whose title matches exactly.
func (r *mongoRecipeRepository) FindByTitle(ctx context.Context, title string) (*model.Recipe, error) {
	return r.findOne(ctx, bson.D{{Key: "title", Value: title}})
}

// FindByAuthor returns all recipes by author.
func (r *mongoRecipeRepository) FindByAuthor(ctx context.Context, author string) ([]model.Recipe, error) {
	return r.findMany(ctx, bson.D{{Key: "author", Value: author}})
}

// FindByDifficulty returns all recipes with the given difficulty.
func (r *mongoRecipeRepository) FindByDifficulty(ctx context.Context, level string) ([]model.Recipe, error) {
	return r.findMany(ctx, bson.D{{Key: "difficulty", Value: level}})
}

// FindByID returns the recipe with the given ObjectID.
func (r *mongoRecipeRepository) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// UpdateByID applies patch to the recipe with the given ObjectID.
func (r *mongoRecipeRepository) UpdateByID(ctx context.Context, id string, patch *model.RecipePatch) (*model.Recipe, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.updateOne(ctx, bson.D{{Key: "_id", Value: oid}}, patch)
}

// UpdateByTitle applies patch to the first recipe matching title.
func (r *mongoRecipeRepository) UpdateByTitle(ctx context.Context, title string, patch *model.RecipePatch) (*model.Recipe, error) {
	return r.updateOne(ctx, bson.D{{Key: "title", Value: title}}, patch)
}

// DeleteByID removes the recipe with the given ObjectID.
func (r *mongoRecipeRepository) DeleteByID(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc recipeDocument
	err = r.collection.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("recipe_id", id).Msg("recipe not found for delete")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}

	return doc.toModel(), nil
}

// Ping checks the connection to the primary.
func (r *mongoRecipeRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *mongoRecipeRepository) findOne(ctx context.Context, filter bson.D) (*model.Recipe, error) {
	var doc recipeDocument
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(firstMatch)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("filter", filter).Msg("failed to query recipe")
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoRecipeRepository) findMany(ctx context.Context, filter bson.D) ([]model.Recipe, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Interface("filter", filter).Msg("failed to query recipes")
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode recipe documents")
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(docs))
	for i := range docs {
		recipes = append(recipes, *docs[i].toModel())
	}
	return recipes, nil
}

func (r *mongoRecipeRepository) updateOne(ctx context.Context, filter bson.D, patch *model.RecipePatch) (*model.Recipe, error) {
	update := bson.D{{Key: "$set", Value: setFields(patch, time.Now().UTC().Truncate(time.Millisecond))}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetSort(firstMatch)

	var doc recipeDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Interface("filter", filter).Msg("recipe not found for update")
			return nil, nil
		}
		r.logger.Error().Err(err).Interface("filter", filter).Msg("failed to update recipe")
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	return doc.toModel(), nil
}

// setFields builds the $set document for a patch. updatedAt is always
// present, so the update is never empty.
func setFields(patch *model.RecipePatch, now time.Time) bson.D {
	set := bson.D{}
	if patch != nil {
		if patch.Title != nil {
			set = append(set, bson.E{Key: "title", Value: *patch.Title})
		}
		if patch.Author != nil {
			set = append(set, bson.E{Key: "author", Value: *patch.Author})
		}
		if patch.Ingredients != nil {
			set = append(set, bson.E{Key: "ingredients", Value: *patch.Ingredients})
		}
		if patch.Difficulty != nil {
			set = append(set, bson.E{Key: "difficulty", Value: *patch.Difficulty})
		}
		if patch.PrepTime != nil {
			set = append(set, bson.E{Key: "prepTime", Value: *patch.PrepTime})
		}
		if patch.CookTime != nil {
			set = append(set, bson.E{Key: "cookTime", Value: *patch.CookTime})
		}
		if patch.Instructions != nil {
			set = append(set, bson.E{Key: "instructions", Value: []string(*patch.Instructions)})
		}
	}
	return append(set, bson.E{Key: "updatedAt", Value: now})
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", model.ErrInvalidRecipeID, id)
	}
	return oid, nil
}
