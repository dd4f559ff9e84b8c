package domain

import "time"

// CustomerInfo carries the checkout form's customer fields. Address is the
// composed single string the order API expects, not structured parts.
type CustomerInfo struct {
	Name    string `json:"customer_name"`
	Email   string `json:"customer_email"`
	Phone   string `json:"customer_phone"`
	Address string `json:"customer_address"`
}

// OrderRequestItem pairs a product with the quantity being ordered.
type OrderRequestItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the one-shot payload sent to the order API at submit
// time. It is projected from the cart and never retained afterwards.
type OrderRequest struct {
	Items    []OrderRequestItem `json:"cart_items"`
	Customer CustomerInfo       `json:"customer"`
}

// OrderItem is one line of a created order as the order API reports it.
type OrderItem struct {
	ID        int64   `json:"id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"total_price"`
}

// Order is the order API's view of a successfully created order.
type Order struct {
	ID          int64       `json:"id"`
	Customer    string      `json:"customer_name"`
	Email       string      `json:"customer_email"`
	Phone       string      `json:"customer_phone"`
	Address     string      `json:"customer_address"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
