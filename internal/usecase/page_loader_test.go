package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

func TestLoad_Success(t *testing.T) {
	t.Parallel()

	client := &fakeShopClient{
		products: []domain.Product{{ID: 1, Name: "A"}},
		orders:   []domain.Order{{ID: 2, CustomerName: "Ada"}},
	}
	target := &recordingTarget{}

	usecase.NewPageLoader(client, quietLogger()).Load(context.Background(), target)

	assert.Equal(t, []bool{true, false}, target.history)
	assert.Equal(t, client.products, target.products)
	assert.Equal(t, client.orders, target.orders)
	assert.Empty(t, target.pageError)
	assert.Empty(t, target.notices)
}

func TestLoad_LoadingClearsOnlyAfterBothFinish(t *testing.T) {
	t.Parallel()

	client := &fakeShopClient{
		products:   []domain.Product{{ID: 1, Name: "A"}},
		ordersErr:  &domain.TransportError{Op: "GET /orders", StatusCode: 500},
		ordersGate: make(chan struct{}),
	}
	target := &recordingTarget{}

	done := make(chan struct{})
	go func() {
		usecase.NewPageLoader(client, quietLogger()).Load(context.Background(), target)
		close(done)
	}()

	require.Eventually(t, func() bool { return target.productCount() == 1 }, time.Second, time.Millisecond)
	assert.True(t, target.isLoading(), "products finished but orders are still pending")

	close(client.ordersGate)
	<-done

	assert.False(t, target.isLoading())
	assert.Contains(t, target.pageError, "500")
	assert.Len(t, target.products, 1, "a failing orders fetch keeps the loaded products")
}

func TestLoad_TransportErrorSetsPageError(t *testing.T) {
	t.Parallel()

	client := &fakeShopClient{
		productsErr: &domain.TransportError{Op: "GET /products", Err: errors.New("connection refused")},
		orders:      []domain.Order{},
	}
	target := &recordingTarget{}

	usecase.NewPageLoader(client, quietLogger()).Load(context.Background(), target)

	assert.Contains(t, target.pageError, "connection refused")
	assert.Empty(t, target.notices)
	assert.NotNil(t, target.orders)
}

func TestLoad_MissingDataNotifies(t *testing.T) {
	t.Parallel()

	client := &fakeShopClient{
		productsErr: &domain.MissingDataError{Resource: "products"},
		ordersErr:   &domain.MissingDataError{Resource: "orders"},
	}
	target := &recordingTarget{}

	usecase.NewPageLoader(client, quietLogger()).Load(context.Background(), target)

	assert.Empty(t, target.pageError)
	messages := make([]string, 0, len(target.notices))
	for _, n := range target.notices {
		assert.Equal(t, domain.NoticeWarning, n.Kind)
		messages = append(messages, n.Message)
	}
	assert.ElementsMatch(t, []string{"Unable to load products", "Unable to load Orders"}, messages)
}

func TestLoad_UnexpectedErrorNotifies(t *testing.T) {
	t.Parallel()

	client := &fakeShopClient{
		productsErr: errors.New("failed to decode /products response: unexpected EOF"),
		orders:      []domain.Order{},
	}
	target := &recordingTarget{}

	usecase.NewPageLoader(client, quietLogger()).Load(context.Background(), target)

	require.Len(t, target.notices, 1)
	assert.Equal(t, domain.NoticeError, target.notices[0].Kind)
	assert.Equal(t, "An unexpected error occurred.", target.notices[0].Message)
	assert.Empty(t, target.pageError)
}
