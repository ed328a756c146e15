package domain

import "context"

// LoadTarget receives the results of a page load. Products and orders are
// written from different goroutines; implementations must be safe for that.
type LoadTarget interface {
	SetLoading(loading bool)
	SetProducts(products []Product)
	SetOrders(orders []Order)
	SetPageError(message string)
	Notify(notice Notice)
}

type PageLoader interface {
	Load(ctx context.Context, target LoadTarget)
}

type OrderSubmitter interface {
	Submit(ctx context.Context, lines []BasketLine, customerName string) error
}
