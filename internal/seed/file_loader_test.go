package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSeedFile writes data to a file in a temporary directory.
func createTestSeedFile(t *testing.T, filename string, data []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, data, 0o600))
	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "recipes.json", []byte(`[{"title":"Tea"},{"title":"Soup"}]`))

	recipes, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Tea", recipes[0].Title)
}

func TestFileLoader_Load_Gzipped(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "recipes.yaml.gz", gzipBytes(t, "- title: Tea\n- title: Soup\n"))

	recipes, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	recipes, err := loader.Load(context.Background(), "/nonexistent/recipes.json")

	assert.Error(t, err)
	assert.Nil(t, recipes)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_UnsupportedFormat(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "recipes.txt", []byte("Tea"))

	_, err := loader.Load(context.Background(), filePath)

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "recipes.json", []byte(`[]`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
}
