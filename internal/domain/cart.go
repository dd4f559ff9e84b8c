package domain

// CartLine is one distinct product selected for purchase. The Product is a
// snapshot copied at add time, never re-fetched.
type CartLine struct {
	ID        string  `json:"id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"total_price"`
}
