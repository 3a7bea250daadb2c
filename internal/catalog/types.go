package catalog

import "math"

// Product is a single catalog record as returned by the products endpoint.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// DiscountedPrice returns the price after applying DiscountPercentage,
// rounded to cents. Out-of-range percentages are clamped to [0, 100].
func (p *Product) DiscountedPrice() float64 {
	pct := math.Max(0, math.Min(100, p.DiscountPercentage))
	return math.Round(p.Price*(100-pct)) / 100
}

// Page is one fetched batch of products plus the pagination metadata the
// catalog reported for it.
type Page struct {
	Index    int       `json:"index"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
