package models

type Product struct {
	Name             string            `json:"name"`
	PopularityScore  float64           `json:"popularityScore"`
	Weight           float64           `json:"weight"`
	Images           map[string]string `json:"images"`
	Price            float64           `json:"price"`
	PopularityRating float64           `json:"popularityRating"`
}

type HealthStatus struct {
	Status        string `json:"status"`
	CatalogSource string `json:"catalog_source"`
	Products      int    `json:"products"`
}
