package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, EmbeddedSource, c.Source())
	assert.Equal(t, 8, c.Len())

	products := c.Products()
	assert.Equal(t, "Engagement Ring 1", products[0].Name)
	assert.Equal(t, 17.0, products[0].PopularityScore)
	assert.Equal(t, 2.1, products[0].Weight)
	assert.Contains(t, products[0].Images, "yellow")
	assert.Equal(t, "Engagement Ring 8", products[7].Name)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "Two products",
			input: `[{"name":"A","popularityScore":1,"weight":2,"images":{}},{"name":"B","popularityScore":3,"weight":4}]`,
			want:  2,
		},
		{
			name:  "Empty array",
			input: `[]`,
			want:  0,
		},
		{
			name:  "Unknown fields are ignored",
			input: `[{"name":"A","sku":"x"}]`,
			want:  1,
		},
		{
			name:    "Malformed json",
			input:   `[{"name":`,
			wantErr: true,
		},
		{
			name:    "Object instead of array",
			input:   `{"name":"A"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load("test", strings.NewReader(tt.input))
			if tt.wantErr {
				var loadErr *DataLoadError
				require.True(t, errors.As(err, &loadErr))
				assert.Equal(t, "test", loadErr.Source)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Len())
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"A"},{"name":"B"},{"name":"C"}]`), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())

	names := []string{}
	for _, p := range c.Products() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))

	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProductsReturnsCopy(t *testing.T) {
	c, err := Load("test", strings.NewReader(`[{"name":"A","weight":1}]`))
	require.NoError(t, err)

	products := c.Products()
	products[0].Price = 99
	products[0].Name = "changed"

	again := c.Products()
	assert.Equal(t, "A", again[0].Name)
	assert.Zero(t, again[0].Price)
}
