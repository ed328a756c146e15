package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/domain"
)

var _ domain.PageLoader = (*pageLoader)(nil)

const (
	unexpectedErrorMessage = "An unexpected error occurred."
	missingProductsMessage = "Unable to load products"
	missingOrdersMessage   = "Unable to load Orders"
)

type pageLoader struct {
	shopClient clients.ShopClient
	log        *logrus.Logger
}

func NewPageLoader(shopClient clients.ShopClient, logger *logrus.Logger) domain.PageLoader {
	return &pageLoader{
		shopClient: shopClient,
		log:        logger,
	}
}

// Load fetches products and orders concurrently. The target stays in the
// loading state until both fetches have returned, whatever their outcome.
func (uc *pageLoader) Load(ctx context.Context, target domain.LoadTarget) {
	target.SetLoading(true)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		uc.loadProducts(ctx, target)
	}()
	go func() {
		defer wg.Done()
		uc.loadOrders(ctx, target)
	}()
	wg.Wait()

	target.SetLoading(false)
	uc.log.Info("Use Case: Page load finished")
}

func (uc *pageLoader) loadProducts(ctx context.Context, target domain.LoadTarget) {
	products, err := uc.shopClient.ListProducts(ctx)
	if err != nil {
		uc.handleLoadError(target, "products", missingProductsMessage, err)
		return
	}
	target.SetProducts(products)
}

func (uc *pageLoader) loadOrders(ctx context.Context, target domain.LoadTarget) {
	orders, err := uc.shopClient.ListOrders(ctx)
	if err != nil {
		uc.handleLoadError(target, "orders", missingOrdersMessage, err)
		return
	}
	target.SetOrders(orders)
}

func (uc *pageLoader) handleLoadError(target domain.LoadTarget, resource, missingMessage string, err error) {
	switch {
	case domain.IsTransportError(err):
		uc.log.Errorf("Use Case: Loading %s failed: %v", resource, err)
		target.SetPageError(err.Error())
	case domain.IsMissingDataError(err):
		uc.log.Warnf("Use Case: Loading %s returned no data: %v", resource, err)
		target.Notify(domain.Notice{Kind: domain.NoticeWarning, Message: missingMessage})
	default:
		uc.log.Errorf("Use Case: Unexpected error loading %s: %v", resource, err)
		target.Notify(domain.Notice{Kind: domain.NoticeError, Message: unexpectedErrorMessage})
	}
}
