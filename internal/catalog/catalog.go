package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"productapi/internal/models"
)

//go:embed data/products.json
var embeddedProducts []byte

const EmbeddedSource = "embedded:products.json"

// DataLoadError reports a catalog that could not be read or decoded.
// It is fatal at startup.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Catalog is the read-only product list shared by all requests.
type Catalog struct {
	source   string
	products []models.Product
}

func New(source string, products []models.Product) *Catalog {
	return &Catalog{source: source, products: products}
}

// Load decodes a JSON array of products. Entries are not validated.
func Load(source string, r io.Reader) (*Catalog, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("invalid json: %w", err)}
	}
	return New(source, products), nil
}

func LoadEmbedded() (*Catalog, error) {
	return Load(EmbeddedSource, bytes.NewReader(embeddedProducts))
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	return Load(path, f)
}

func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the catalog in file order. Image maps are
// shared with the catalog and must not be modified.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}
