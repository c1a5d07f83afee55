package model

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Recipe represents a stored recipe document.
type Recipe struct {
	ID           string       `json:"_id" yaml:"-"`
	Title        string       `json:"title" yaml:"title"`
	Author       string       `json:"author" yaml:"author"`
	Ingredients  []string     `json:"ingredients" yaml:"ingredients"`
	Difficulty   string       `json:"difficulty" yaml:"difficulty"`
	PrepTime     float64      `json:"prepTime" yaml:"prepTime"`
	CookTime     float64      `json:"cookTime" yaml:"cookTime"`
	Instructions Instructions `json:"instructions" yaml:"instructions"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time    `json:"updatedAt" yaml:"-"`
}

// EnsureSlices replaces nil list fields with empty ones so they encode as
// [] rather than null.
func (r *Recipe) EnsureSlices() *Recipe {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = Instructions{}
	}
	return r
}

// RecipePatch holds the fields an update may change. Nil fields are left
// untouched.
type RecipePatch struct {
	Title        *string       `json:"title,omitempty"`
	Author       *string       `json:"author,omitempty"`
	Ingredients  *[]string     `json:"ingredients,omitempty"`
	Difficulty   *string       `json:"difficulty,omitempty"`
	PrepTime     *float64      `json:"prepTime,omitempty"`
	CookTime     *float64      `json:"cookTime,omitempty"`
	Instructions *Instructions `json:"instructions,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p *RecipePatch) IsEmpty() bool {
	return p == nil || (p.Title == nil &&
		p.Author == nil &&
		p.Ingredients == nil &&
		p.Difficulty == nil &&
		p.PrepTime == nil &&
		p.CookTime == nil &&
		p.Instructions == nil)
}

// Instructions is an ordered list of preparation steps. A single string is
// accepted on input and stored as one step.
type Instructions []string

// UnmarshalJSON accepts a list of steps or a single step. Numbers and
// booleans are cast to strings.
func (in *Instructions) UnmarshalJSON(data []byte) error {
	steps, set, err := castStrings("instructions", bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	if !set {
		*in = nil
		return nil
	}
	*in = steps
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (in *Instructions) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var step string
		if err := value.Decode(&step); err != nil {
			return err
		}
		*in = Instructions{step}
		return nil
	}

	var steps []string
	if err := value.Decode(&steps); err != nil {
		return fmt.Errorf("instructions must be a string or a list of strings: %w", err)
	}
	*in = steps
	return nil
}

// CreateRecipeResponse is returned by POST /recipes.
type CreateRecipeResponse struct {
	Message string  `json:"message"`
	Recipe  *Recipe `json:"recipe"`
}

// UpdateRecipeResponse is returned by the update routes.
type UpdateRecipeResponse struct {
	Message       string  `json:"message"`
	UpdatedRecipe *Recipe `json:"updatedRecipe"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
