package domain

import "time"

// Category tags products by the kind of dental-care gear they are.
// The catalog may grow new categories without a code change here.
type Category string

const (
	CategoryWaterFlosser  Category = "water_flosser"
	CategoryElectricBrush Category = "electric_brush"
	CategoryMouthwash     Category = "mouthwash"
)

// Product is owned by the external catalog service. The storefront only
// reads it; a copy taken at add-to-cart time is the snapshot the cart keeps.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
