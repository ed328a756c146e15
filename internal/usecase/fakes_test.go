package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeShopClient struct {
	mu sync.Mutex

	products     []domain.Product
	productsErr  error
	productsGate chan struct{}

	orders     []domain.Order
	ordersErr  error
	ordersGate chan struct{}

	createErr error
	created   []domain.OrderPayload
}

func (f *fakeShopClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if f.productsGate != nil {
		<-f.productsGate
	}
	return f.products, f.productsErr
}

func (f *fakeShopClient) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if f.ordersGate != nil {
		<-f.ordersGate
	}
	return f.orders, f.ordersErr
}

func (f *fakeShopClient) CreateOrder(ctx context.Context, payload domain.OrderPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
	return f.createErr
}

func (f *fakeShopClient) createdPayloads() []domain.OrderPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OrderPayload(nil), f.created...)
}

type recordingTarget struct {
	mu        sync.Mutex
	loading   bool
	history   []bool
	products  []domain.Product
	orders    []domain.Order
	pageError string
	notices   []domain.Notice
}

func (r *recordingTarget) SetLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = loading
	r.history = append(r.history, loading)
}

func (r *recordingTarget) SetProducts(products []domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = products
}

func (r *recordingTarget) SetOrders(orders []domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = orders
}

func (r *recordingTarget) SetPageError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pageError = message
}

func (r *recordingTarget) Notify(notice domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recordingTarget) isLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *recordingTarget) productCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}
