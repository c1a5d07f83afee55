// Package seed loads recipe fixtures from local files or S3 and stores them
// through the recipe service.
package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"recipe-api/internal/model"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known
// recipe format.
var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// Loader defines the interface for loading recipe seed files.
type Loader interface {
	// Load reads a seed file and returns the recipes it contains.
	Load(ctx context.Context, path string) ([]model.Recipe, error)
}

// Decode parses recipes from r. The format is chosen by name's extension
// after an optional .gz suffix, which gzip-decodes the stream first.
func Decode(name string, r io.Reader) ([]model.Recipe, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
		lower = strings.TrimSuffix(lower, ".gz")
	}

	switch filepath.Ext(lower) {
	case ".json":
		return decodeJSON(r)
	case ".jsonl", ".ndjson":
		return decodeJSONLines(r)
	case ".yaml", ".yml":
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func decodeJSON(r io.Reader) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := json.NewDecoder(r).Decode(&recipes); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Recipe{}, nil
		}
		return nil, fmt.Errorf("invalid JSON recipe list: %w", err)
	}
	return recipes, nil
}

func decodeJSONLines(r io.Reader) ([]model.Recipe, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	recipes := make([]model.Recipe, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var recipe model.Recipe
		if err := json.Unmarshal(line, &recipe); err != nil {
			return nil, fmt.Errorf("invalid recipe on line %d: %w", lineNo, err)
		}
		recipes = append(recipes, recipe)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading recipe lines: %w", err)
	}

	return recipes, nil
}

func decodeYAML(r io.Reader) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := yaml.NewDecoder(r).Decode(&recipes); err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Recipe{}, nil
		}
		return nil, fmt.Errorf("invalid YAML recipe list: %w", err)
	}
	return recipes, nil
}
