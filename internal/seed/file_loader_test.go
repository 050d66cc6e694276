package seed

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nutricalc/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSeedFile writes lines into a gzipped file and returns its path.
func createTestSeedFile(t *testing.T, filename string, lines []string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "foods.jsonl.gz", []string{
		`{"fdcId":"168936","description":"Flour","nutrients":{"calories":364,"protein":10.3,"fat":0.98,"carbohydrates":76.3,"fiber":2.7}}`,
		``,
		`{"fdcId":169655,"description":"Sugar","nutrients":{"calories":387,"carbohydrates":100}}`,
	})

	records, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "168936", records[0].ID)
	assert.Equal(t, 76.3, records[0].Nutrients.Carbohydrates)
	assert.Equal(t, "169655", records[1].ID)
	assert.Equal(t, model.NutrientProfile{Calories: 387, Carbohydrates: 100}, records[1].Nutrients)
}

func TestFileLoader_Load_SkipsRecordsWithoutID(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "foods.jsonl.gz", []string{
		`{"fdcId":"","description":"Nameless","nutrients":{"calories":1}}`,
		`{"description":"Missing","nutrients":{"calories":2}}`,
		`{"fdcId":"1","description":"Kept","nutrients":{"calories":3,"fat":-4}}`,
	})

	records, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, 0.0, records[0].Nutrients.Fat)
}

func TestFileLoader_Load_SkipsMalformedIDs(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createTestSeedFile(t, "foods.jsonl.gz", []string{
		`{"fdcId":"bad id!","description":"Spaced","nutrients":{"calories":1}}`,
		`{"fdcId":"` + strings.Repeat("9", 65) + `","description":"Too long","nutrients":{"calories":2}}`,
		`{"fdcId":"sr-legacy_171287","description":"Egg","nutrients":{"calories":143}}`,
	})

	records, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sr-legacy_171287", records[0].ID)
}

func TestFileLoader_Load_Errors(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	plain := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("not gzipped"), 0o600))

	tests := []struct {
		name     string
		path     string
		errMatch string
	}{
		{
			name:     "Missing file",
			path:     filepath.Join(t.TempDir(), "missing.gz"),
			errMatch: "failed to open seed file",
		},
		{
			name:     "Not gzipped",
			path:     plain,
			errMatch: "failed to create gzip reader",
		},
		{
			name:     "Malformed record",
			path:     createTestSeedFile(t, "bad.gz", []string{`{"fdcId":"1"}`, `{broken`}),
			errMatch: "invalid record on line 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := loader.Load(context.Background(), tt.path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMatch)
			assert.Nil(t, records)
		})
	}
}
