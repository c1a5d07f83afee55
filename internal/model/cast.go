package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var errNotObject = errors.New("recipe must be a JSON object")

// recipeFields holds the raw JSON value of every recipe field so each can be
// cast on its own.
type recipeFields struct {
	ID           json.RawMessage `json:"_id"`
	Title        json.RawMessage `json:"title"`
	Author       json.RawMessage `json:"author"`
	Ingredients  json.RawMessage `json:"ingredients"`
	Difficulty   json.RawMessage `json:"difficulty"`
	PrepTime     json.RawMessage `json:"prepTime"`
	CookTime     json.RawMessage `json:"cookTime"`
	Instructions json.RawMessage `json:"instructions"`
	CreatedAt    json.RawMessage `json:"createdAt"`
	UpdatedAt    json.RawMessage `json:"updatedAt"`
}

func readRecipeFields(data []byte) (*recipeFields, bool, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil, false, nil
	}
	if len(data) == 0 || data[0] != '{' {
		return nil, false, errNotObject
	}

	var f recipeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, false, err
	}
	return &f, true, nil
}

// UnmarshalJSON decodes a recipe, casting scalar fields the way a document
// schema would: numbers and booleans become strings, numeric strings become
// numbers. Values that cannot be cast wrap ErrRecipeCast.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	f, ok, err := readRecipeFields(data)
	if err != nil || !ok {
		return err
	}

	var decoded Recipe
	if decoded.ID, _, err = castString("_id", f.ID); err != nil {
		return err
	}
	if decoded.Title, _, err = castString("title", f.Title); err != nil {
		return err
	}
	if decoded.Author, _, err = castString("author", f.Author); err != nil {
		return err
	}
	if decoded.Ingredients, _, err = castStrings("ingredients", f.Ingredients); err != nil {
		return err
	}
	if decoded.Difficulty, _, err = castString("difficulty", f.Difficulty); err != nil {
		return err
	}
	if decoded.PrepTime, _, err = castNumber("prepTime", f.PrepTime); err != nil {
		return err
	}
	if decoded.CookTime, _, err = castNumber("cookTime", f.CookTime); err != nil {
		return err
	}
	steps, _, err := castStrings("instructions", f.Instructions)
	if err != nil {
		return err
	}
	if steps != nil {
		decoded.Instructions = Instructions(steps)
	}
	if decoded.CreatedAt, err = castTime("createdAt", f.CreatedAt); err != nil {
		return err
	}
	if decoded.UpdatedAt, err = castTime("updatedAt", f.UpdatedAt); err != nil {
		return err
	}

	*r = decoded
	return nil
}

// UnmarshalJSON decodes a patch with the same casting rules as Recipe.
// Unknown fields are ignored and null leaves a field unset.
func (p *RecipePatch) UnmarshalJSON(data []byte) error {
	f, ok, err := readRecipeFields(data)
	if err != nil || !ok {
		return err
	}

	var decoded RecipePatch
	if s, set, err := castString("title", f.Title); err != nil {
		return err
	} else if set {
		decoded.Title = &s
	}
	if s, set, err := castString("author", f.Author); err != nil {
		return err
	} else if set {
		decoded.Author = &s
	}
	if list, set, err := castStrings("ingredients", f.Ingredients); err != nil {
		return err
	} else if set {
		decoded.Ingredients = &list
	}
	if s, set, err := castString("difficulty", f.Difficulty); err != nil {
		return err
	} else if set {
		decoded.Difficulty = &s
	}
	if n, set, err := castNumber("prepTime", f.PrepTime); err != nil {
		return err
	} else if set {
		decoded.PrepTime = &n
	}
	if n, set, err := castNumber("cookTime", f.CookTime); err != nil {
		return err
	} else if set {
		decoded.CookTime = &n
	}
	if list, set, err := castStrings("instructions", f.Instructions); err != nil {
		return err
	} else if set {
		steps := Instructions(list)
		decoded.Instructions = &steps
	}

	*p = decoded
	return nil
}

func castError(field string, raw json.RawMessage) error {
	return fmt.Errorf("%w: %s=%s", ErrRecipeCast, field, truncate(string(raw), 64))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// castString accepts strings, numbers and booleans.
func castString(field string, raw json.RawMessage) (string, bool, error) {
	if isNull(raw) {
		return "", false, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, castError(field, raw)
		}
		return s, true, nil
	case 't', 'f':
		return string(raw), true, nil
	case '{', '[':
		return "", false, castError(field, raw)
	default:
		n, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return "", false, castError(field, raw)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true, nil
	}
}

// castNumber accepts numbers, numeric strings and booleans. An empty or blank
// string counts as unset.
func castNumber(field string, raw json.RawMessage) (float64, bool, error) {
	if isNull(raw) {
		return 0, false, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, castError(field, raw)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false, castError(field, raw)
		}
		return n, true, nil
	case 't':
		return 1, true, nil
	case 'f':
		return 0, true, nil
	case '{', '[':
		return 0, false, castError(field, raw)
	default:
		n, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsInf(n, 0) {
			return 0, false, castError(field, raw)
		}
		return n, true, nil
	}
}

// castStrings accepts a list of castable scalars, or a single scalar as a
// one-element list. Null elements are dropped.
func castStrings(field string, raw json.RawMessage) ([]string, bool, error) {
	if isNull(raw) {
		return nil, false, nil
	}

	if raw[0] != '[' {
		s, _, err := castString(field, raw)
		if err != nil {
			return nil, false, err
		}
		return []string{s}, true, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, castError(field, raw)
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, set, err := castString(field, item)
		if err != nil {
			return nil, false, err
		}
		if set {
			list = append(list, s)
		}
	}
	return list, true, nil
}

func castTime(field string, raw json.RawMessage) (time.Time, error) {
	if isNull(raw) {
		return time.Time{}, nil
	}
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		return time.Time{}, castError(field, raw)
	}
	return t, nil
}
