package main

import (
	"log"
	"net/http"

	"productapi/internal/catalog"
	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/goldprice"
	"productapi/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Catalog is loaded once; a broken catalog stops startup
	products, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	log.Printf("📦 Loaded %d products from %s", products.Len(), products.Source())

	if cfg.GoldAPIKey == "" {
		log.Printf("⚠️  GOLD_API_KEY is not set, prices will use the fallback of %.2f", goldprice.FallbackPricePerGram)
	}
	prices := goldprice.NewClient(cfg.GoldAPIURL, cfg.GoldAPIKey, cfg.GoldAPITimeout)

	srv := server.NewServer(products, prices)
	handler := srv.SetupRoutes()

	log.Printf("🚀 Starting server on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		// A fresh database starts from the bundled catalog
		seed, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		if err := database.SeedIfEmpty(db, seed); err != nil {
			return nil, err
		}
		return database.LoadCatalog(db)
	case cfg.CatalogPath != "":
		return catalog.LoadFile(cfg.CatalogPath)
	default:
		return catalog.LoadEmbedded()
	}
}
