package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Code  string          `json:"code"`
}

// BasketLine is one product held in a basket. Quantity is always >= 1.
type BasketLine struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
