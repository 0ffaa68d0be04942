package order

import "time"

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

type Order struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	ShippingType string    `json:"shipping_type"`
	PayMethod    string    `json:"pay_method"`
	Subtotal     string    `json:"subtotal"` // NUMERIC -> string
	ShippingFee  string    `json:"shipping_fee"`
	Discount     string    `json:"discount"`
	Total        string    `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// allowed status transitions; anything else is rejected at the handler.
var transitions = map[string][]string{
	StatusPending: {StatusPaid, StatusCanceled},
	StatusPaid:    {StatusCompleted, StatusCanceled},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
