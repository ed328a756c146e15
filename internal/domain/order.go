package domain

import "github.com/shopspring/decimal"

type Order struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type OrderItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderSubmission struct {
	CustomerName string      `json:"customer_name"`
	OrderItems   []OrderItem `json:"order_items"`
}

// OrderPayload is the request body of POST /orders.
type OrderPayload struct {
	Order OrderSubmission `json:"order"`
}

// NewOrderPayload maps basket lines to order items one to one, keeping their order.
func NewOrderPayload(lines []BasketLine, customerName string) OrderPayload {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID: line.ID,
			Quantity:  line.Quantity,
		})
	}
	return OrderPayload{
		Order: OrderSubmission{
			CustomerName: customerName,
			OrderItems:   items,
		},
	}
}
