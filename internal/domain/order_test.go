package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestNewOrderPayload_MapsLinesInOrder(t *testing.T) {
	t.Parallel()

	lines := []domain.BasketLine{
		{ID: 1, Name: "A", Quantity: 2},
		{ID: 3, Name: "C", Quantity: 1},
	}

	payload := domain.NewOrderPayload(lines, "Ada Lovelace")

	assert.Equal(t, "Ada Lovelace", payload.Order.CustomerName)
	assert.Equal(t, []domain.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	}, payload.Order.OrderItems)
}

func TestOrderPayload_WireShape(t *testing.T) {
	t.Parallel()

	payload := domain.NewOrderPayload([]domain.BasketLine{{ID: 7, Name: "X", Quantity: 4}}, "Bo")

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"order":{"customer_name":"Bo","order_items":[{"product_id":7,"quantity":4}]}}`,
		string(raw))
}

func TestOrder_DecodesStringAndNumberPrices(t *testing.T) {
	t.Parallel()

	var orders []domain.Order
	err := json.Unmarshal([]byte(`[
		{"id":1,"customer_name":"A","total_price":"12.50"},
		{"id":2,"customer_name":"B","total_price":7}
	]`), &orders)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.True(t, orders[0].TotalPrice.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, orders[1].TotalPrice.Equal(decimal.NewFromInt(7)))
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := fmt.Errorf("load: %w", &domain.TransportError{Op: "GET /products", Err: cause})

	assert.True(t, domain.IsTransportError(err))
	assert.False(t, domain.IsMissingDataError(err))
	assert.ErrorIs(t, err, cause)

	withDetail := &domain.TransportError{Op: "POST /orders", StatusCode: 422, Detail: "product 9 not found"}
	assert.Equal(t, "product 9 not found", withDetail.Message())
	assert.Contains(t, withDetail.Error(), "422")

	bare := &domain.TransportError{Op: "GET /orders", StatusCode: 500}
	assert.Equal(t, bare.Error(), bare.Message())
}

func TestMissingDataError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", &domain.MissingDataError{Resource: "products"})
	assert.True(t, domain.IsMissingDataError(err))
	assert.Contains(t, err.Error(), "products")
}
