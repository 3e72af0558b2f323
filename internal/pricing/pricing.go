// Package pricing derives displayed prices and popularity ratings from the
// static catalog and a gold price per gram.
package pricing

import (
	"github.com/shopspring/decimal"

	"productapi/internal/models"
)

// RatingScale is the popularity score that maps to a rating of 1.0.
// Scores above it are not clamped.
const RatingScale = 20

// Price returns round2((score + 1) * weight * goldPerGram), rounding half up.
func Price(score, weight, goldPerGram float64) float64 {
	raw := (score + 1) * weight * goldPerGram
	return decimal.NewFromFloat(raw).Round(2).InexactFloat64()
}

// Rating returns round1(score / 20), rounding half up.
func Rating(score float64) float64 {
	return decimal.NewFromFloat(score / RatingScale).Round(1).InexactFloat64()
}

// Apply prices every product against goldPerGram. The input is left untouched
// and the result keeps its order and length.
func Apply(products []models.Product, goldPerGram float64) []models.Product {
	priced := make([]models.Product, len(products))
	for i, p := range products {
		p.Price = Price(p.PopularityScore, p.Weight, goldPerGram)
		p.PopularityRating = Rating(p.PopularityScore)
		priced[i] = p
	}
	return priced
}
