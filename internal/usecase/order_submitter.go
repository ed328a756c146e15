package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/domain"
)

var _ domain.OrderSubmitter = (*orderSubmitter)(nil)

type orderSubmitter struct {
	shopClient clients.ShopClient
	log        *logrus.Logger
}

func NewOrderSubmitter(shopClient clients.ShopClient, logger *logrus.Logger) domain.OrderSubmitter {
	return &orderSubmitter{
		shopClient: shopClient,
		log:        logger,
	}
}

// Submit sends the basket as a new order. An empty basket or a blank customer
// name is rejected before any request is made.
func (uc *orderSubmitter) Submit(ctx context.Context, lines []domain.BasketLine, customerName string) error {
	if len(lines) == 0 {
		uc.log.Warn("Use Case: Refusing to submit an empty basket")
		return domain.ErrEmptyBasket
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		uc.log.Warn("Use Case: Refusing to submit an order without customer name")
		return domain.ErrCustomerNameRequired
	}

	payload := domain.NewOrderPayload(lines, customerName)
	uc.log.Infof("Use Case: Submitting order with %d lines for '%s'", len(lines), customerName)

	if err := uc.shopClient.CreateOrder(ctx, payload); err != nil {
		uc.log.Errorf("Use Case: Order submission failed: %v", err)
		return fmt.Errorf("order submission failed: %w", err)
	}

	uc.log.Info("Use Case: Order submitted")
	return nil
}
