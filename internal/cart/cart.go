// Package cart is the user-scoped shopping cart.
package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/notify"
)

const (
	Name       = "cart"
	StorageKey = "cart"
)

// Validate admits products that carry an id and a strictly positive price.
func Validate(product *products.Product) bool {
	return product.HasID() && product.HasPositivePrice()
}

// Policy returns the cart collection policy.
func Policy() collection.Policy {
	return collection.Policy{
		Name:            Name,
		StorageKey:      StorageKey,
		Validate:        Validate,
		AddedNotice:     notify.Success("Congratulations!", "Item added to cart"),
		DuplicateNotice: notify.Failure("Sorry!", "Item already added to cart"),
	}
}

// ServiceParams groups dependencies for the cart.
type ServiceParams struct {
	Store    kv.Store
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Notifier notify.Notifier
}

// New builds the cart collection, reloading persisted entries.
func New(ctx context.Context, params ServiceParams) (*collection.Collection, error) {
	return collection.New(ctx, collection.Params{
		Policy:   Policy(),
		Store:    params.Store,
		Logger:   params.Logger,
		Metrics:  params.Metrics,
		Notifier: params.Notifier,
	})
}

// Total sums the entry prices.
func Total(entries []collection.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Price)
	}
	return total
}
