package basket_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/basket"
	"storefront/internal/domain"
)

var (
	productA = domain.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10), Code: "A1"}
	productB = domain.Product{ID: 3, Name: "B", Price: decimal.RequireFromString("2.50"), Code: "B3"}
)

func TestAdd_NewProductCreatesSingleLine(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)

	assert.Equal(t, []domain.BasketLine{{ID: 1, Name: "A", Quantity: 1}}, s.Snapshot())
}

func TestAdd_SameProductTwiceIncrements(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)
	s.Add(productA)

	lines := s.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestRemove_DecrementsAboveOne(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)
	s.Add(productA)
	s.Remove(productA)

	assert.Equal(t, []domain.BasketLine{{ID: 1, Name: "A", Quantity: 1}}, s.Snapshot())
}

func TestRemove_LastUnitDeletesLine(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)
	s.Add(productB)
	s.Remove(productA)

	assert.Equal(t, []domain.BasketLine{{ID: 3, Name: "B", Quantity: 1}}, s.Snapshot())
	assert.Equal(t, 0, s.Quantity(productA.ID))
}

func TestRemove_AbsentProductIsNoOp(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Remove(productA)
	assert.Empty(t, s.Snapshot())

	s.Add(productB)
	s.Remove(productA)
	assert.Equal(t, []domain.BasketLine{{ID: 3, Name: "B", Quantity: 1}}, s.Snapshot())
}

func TestSnapshot_KeepsFirstAddOrder(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productB)
	s.Add(productA)
	s.Add(productB)

	assert.Equal(t, []domain.BasketLine{
		{ID: 3, Name: "B", Quantity: 2},
		{ID: 1, Name: "A", Quantity: 1},
	}, s.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)

	lines := s.Snapshot()
	lines[0].Quantity = 99

	assert.Equal(t, 1, s.Quantity(productA.ID))
}

func TestAddAddRemove_EndToEnd(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)
	s.Add(productA)
	s.Remove(productA)

	assert.Equal(t, []domain.BasketLine{{ID: 1, Name: "A", Quantity: 1}}, s.Snapshot())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	s.Add(productA)
	s.Add(productB)
	require.Equal(t, 2, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Snapshot())
}

func TestConcurrentAddRemove(t *testing.T) {
	t.Parallel()

	s := basket.NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Add(productA) }()
		go func() { defer wg.Done(); s.Add(productA) }()
	}
	wg.Wait()
	for i := 0; i < 99; i++ {
		s.Remove(productA)
	}

	assert.Equal(t, 1, s.Quantity(productA.ID))
}
