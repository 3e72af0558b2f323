package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"productapi/internal/catalog"
	"productapi/internal/models"
)

const Source = "postgres:products"

var ErrEmptyCatalog = errors.New("products table is empty")

func Connect(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	err = createTableIfNotExists(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Successfully connected to database and verified table")
	return db, nil
}

// The table holds catalog source records only. Computed prices are never stored.
func createTableIfNotExists(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		position INTEGER NOT NULL DEFAULT 0,
		name VARCHAR(255) NOT NULL,
		popularity_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		weight DOUBLE PRECISION NOT NULL DEFAULT 0,
		images JSONB NOT NULL DEFAULT '{}'::jsonb
	)`

	_, err := db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	log.Println("Table 'products' verified/created successfully")
	return nil
}

func CountProducts(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Seed inserts every product of c in one transaction, keeping catalog order
// in the position column.
func Seed(db *sql.DB, c *catalog.Catalog) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO products (position, name, popularity_score, weight, images)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, p := range c.Products() {
		images := p.Images
		if images == nil {
			images = map[string]string{}
		}
		imagesJSON, err := json.Marshal(images)
		if err != nil {
			return fmt.Errorf("failed to encode images of %q: %w", p.Name, err)
		}

		_, err = stmt.Exec(i, p.Name, p.PopularityScore, p.Weight, imagesJSON)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Seeded %d products from %s", c.Len(), c.Source())
	return nil
}

// SeedIfEmpty fills an empty products table from seed. A table that already
// has rows is left alone.
func SeedIfEmpty(db *sql.DB, seed *catalog.Catalog) error {
	n, err := CountProducts(db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return Seed(db, seed)
}

// LoadCatalog reads every product row in catalog order. Any failure, an
// empty table included, is a *catalog.DataLoadError.
func LoadCatalog(db *sql.DB) (*catalog.Catalog, error) {
	rows, err := db.Query(`
		SELECT name, popularity_score, weight, images
		FROM products
		ORDER BY position, id
	`)
	if err != nil {
		return nil, &catalog.DataLoadError{Source: Source, Err: fmt.Errorf("query products: %w", err)}
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var images []byte

		if err := rows.Scan(&p.Name, &p.PopularityScore, &p.Weight, &images); err != nil {
			return nil, &catalog.DataLoadError{Source: Source, Err: fmt.Errorf("scan product: %w", err)}
		}

		if len(images) > 0 {
			if err := json.Unmarshal(images, &p.Images); err != nil {
				return nil, &catalog.DataLoadError{Source: Source, Err: fmt.Errorf("images of %q: %w", p.Name, err)}
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &catalog.DataLoadError{Source: Source, Err: fmt.Errorf("iterate products: %w", err)}
	}

	if len(products) == 0 {
		return nil, &catalog.DataLoadError{Source: Source, Err: ErrEmptyCatalog}
	}

	return catalog.New(Source, products), nil
}
