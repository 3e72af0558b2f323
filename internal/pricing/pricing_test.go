package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"productapi/internal/models"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		weight   float64
		gold     float64
		expected float64
	}{
		{name: "Reference product", score: 19, weight: 10, gold: 65.52, expected: 13104.00},
		{name: "Fallback gold price", score: 17, weight: 2.1, gold: 75, expected: 2835.00},
		{name: "Zero score", score: 0, weight: 3, gold: 10, expected: 30},
		{name: "Zero gold", score: 5, weight: 3, gold: 0, expected: 0},
		{name: "Rounds to two places", score: 6.8, weight: 3.4, gold: 65.123, expected: 1727.06},
		{name: "Half rounds up", score: 0, weight: 1, gold: 1.005, expected: 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Price(tt.score, tt.weight, tt.gold))
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		score    float64
		expected float64
	}{
		{score: 0, expected: 0},
		{score: 19, expected: 1.0},
		{score: 20, expected: 1.0},
		{score: 17, expected: 0.9},
		{score: 6.8, expected: 0.3},
		{score: 13, expected: 0.7},
		{score: 1, expected: 0.1},
		// not clamped to the 0-20 scale
		{score: 40, expected: 2.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Rating(tt.score), "score %v", tt.score)
	}
}

func TestApply(t *testing.T) {
	products := []models.Product{
		{Name: "A", PopularityScore: 19, Weight: 10, Images: map[string]string{"yellow": "y.jpg"}},
		{Name: "B", PopularityScore: 0, Weight: 1},
		{Name: "C", PopularityScore: 10, Weight: 2, Price: 1, PopularityRating: 9},
	}

	priced := Apply(products, 65.52)

	assert.Len(t, priced, 3)
	assert.Equal(t, "A", priced[0].Name)
	assert.Equal(t, 13104.00, priced[0].Price)
	assert.Equal(t, 1.0, priced[0].PopularityRating)
	assert.Equal(t, "y.jpg", priced[0].Images["yellow"])

	assert.Equal(t, "B", priced[1].Name)
	assert.Equal(t, 65.52, priced[1].Price)
	assert.Equal(t, 0.0, priced[1].PopularityRating)

	assert.Equal(t, "C", priced[2].Name)
	assert.Equal(t, 1441.44, priced[2].Price)
	assert.Equal(t, 0.5, priced[2].PopularityRating)

	// source slice keeps its original values
	assert.Zero(t, products[0].Price)
	assert.Equal(t, 1.0, products[2].Price)
}

func TestApplyRatingIndependentOfGold(t *testing.T) {
	products := []models.Product{{Name: "A", PopularityScore: 13.2, Weight: 5.2}}

	low := Apply(products, 1)
	high := Apply(products, 1000)

	assert.Equal(t, low[0].PopularityRating, high[0].PopularityRating)
	assert.NotEqual(t, low[0].Price, high[0].Price)
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(nil, 75))
}
