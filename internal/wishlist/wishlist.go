// Package wishlist is the user-scoped wishlist.
package wishlist

import (
	"context"

	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/notify"
)

const (
	Name       = "wishlist"
	StorageKey = "wishlist"
)

// Validate admits any product with an id. Price is not checked here, unlike
// the cart.
func Validate(product *products.Product) bool {
	return product.HasID()
}

// Policy returns the wishlist collection policy.
func Policy() collection.Policy {
	return collection.Policy{
		Name:            Name,
		StorageKey:      StorageKey,
		Validate:        Validate,
		AddedNotice:     notify.Success("Congratulations!", "Item added to wishlist"),
		DuplicateNotice: notify.Failure("Sorry!", "Item already added to wishlist"),
	}
}

// ServiceParams groups dependencies for the wishlist.
type ServiceParams struct {
	Store    kv.Store
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Notifier notify.Notifier
}

// New builds the wishlist collection, reloading persisted entries.
func New(ctx context.Context, params ServiceParams) (*collection.Collection, error) {
	return collection.New(ctx, collection.Params{
		Policy:   Policy(),
		Store:    params.Store,
		Logger:   params.Logger,
		Metrics:  params.Metrics,
		Notifier: params.Notifier,
	})
}
