package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"recipe-api/internal/model"

	"gopkg.in/yaml.v3"
)

// generateSampleRecipes writes seed files in every supported format for use
// with `recipe-api seed`.
// classics.json:     Tea, Pancakes (author Ann)
// soups.jsonl.gz:    Tomato Soup, Miso Soup (author Ben)
// desserts.yaml:     Brownies, Fruit Salad (author Ann)
func main() {
	dataDir := "data/seeds"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	classics := []model.Recipe{
		{
			Title:        "Tea",
			Author:       "Ann",
			Ingredients:  []string{"water", "tea leaves"},
			Difficulty:   "Easy",
			PrepTime:     1.5,
			CookTime:     4,
			Instructions: model.Instructions{"Boil the water", "Steep the leaves for three minutes"},
		},
		{
			Title:        "Pancakes",
			Author:       "Ann",
			Ingredients:  []string{"flour", "milk", "eggs", "butter"},
			Difficulty:   "Medium",
			PrepTime:     10,
			CookTime:     15,
			Instructions: model.Instructions{"Whisk the batter", "Fry in butter until golden"},
		},
	}

	soups := []model.Recipe{
		{
			Title:        "Tomato Soup",
			Author:       "Ben",
			Ingredients:  []string{"tomatoes", "onion", "stock"},
			Difficulty:   "Easy",
			PrepTime:     10,
			CookTime:     30,
			Instructions: model.Instructions{"Soften the onion", "Add tomatoes and stock", "Blend"},
		},
		{
			Title:        "Miso Soup",
			Author:       "Ben",
			Ingredients:  []string{"dashi", "miso", "tofu", "wakame"},
			Difficulty:   "Easy",
			PrepTime:     5,
			CookTime:     10,
			Instructions: model.Instructions{"Heat the dashi", "Dissolve the miso off the boil"},
		},
	}

	desserts := []model.Recipe{
		{
			Title:        "Brownies",
			Author:       "Ann",
			Ingredients:  []string{"chocolate", "butter", "sugar", "eggs", "flour"},
			Difficulty:   "Medium",
			PrepTime:     15,
			CookTime:     25,
			Instructions: model.Instructions{"Melt chocolate with butter", "Fold in the rest", "Bake at 180C"},
		},
		{
			Title:        "Fruit Salad",
			Author:       "Ann",
			Ingredients:  []string{"apple", "orange", "grapes"},
			Difficulty:   "Easy",
			PrepTime:     10,
			Instructions: model.Instructions{"Chop and toss"},
		},
	}

	writers := []struct {
		name    string
		recipes []model.Recipe
		write   func(path string, recipes []model.Recipe) error
	}{
		{"classics.json", classics, writeJSON},
		{"soups.jsonl.gz", soups, writeJSONLinesGzip},
		{"desserts.yaml", desserts, writeYAML},
	}

	for _, w := range writers {
		filePath := filepath.Join(dataDir, w.name)

		if err := w.write(filePath, w.recipes); err != nil {
			log.Fatalf("Failed to create %s: %v", w.name, err)
		}

		fmt.Printf("Created %s with %d recipes\n", filePath, len(w.recipes))
	}

	fmt.Println("\nSample seed files created successfully!")
	fmt.Printf("\nLoad them with:\n  recipe-api seed %s/classics.json %s/soups.jsonl.gz %s/desserts.yaml\n",
		dataDir, dataDir, dataDir)
}

func writeJSON(filePath string, recipes []model.Recipe) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(seedDocuments(recipes))
}

func writeJSONLinesGzip(filePath string, recipes []model.Recipe) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, doc := range seedDocuments(recipes) {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to write recipe: %w", err)
		}
	}

	return nil
}

func writeYAML(filePath string, recipes []model.Recipe) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	defer enc.Close()

	return enc.Encode(recipes)
}

// seedDocument is the JSON seed shape: no identifier or timestamps.
type seedDocument struct {
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Ingredients  []string `json:"ingredients"`
	Difficulty   string   `json:"difficulty"`
	PrepTime     float64  `json:"prepTime"`
	CookTime     float64  `json:"cookTime"`
	Instructions []string `json:"instructions"`
}

func seedDocuments(recipes []model.Recipe) []seedDocument {
	docs := make([]seedDocument, 0, len(recipes))
	for _, r := range recipes {
		docs = append(docs, seedDocument{
			Title:        r.Title,
			Author:       r.Author,
			Ingredients:  r.Ingredients,
			Difficulty:   r.Difficulty,
			PrepTime:     r.PrepTime,
			CookTime:     r.CookTime,
			Instructions: r.Instructions,
		})
	}
	return docs
}
