package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CartService exposes the active user's cart.
type CartService interface {
	Cart(ctx context.Context) storefront.CartView
	AddToCart(ctx context.Context, product *products.Product) collection.Result
	ClearCart(ctx context.Context) collection.Result
}

// WishlistService exposes the active user's wishlist.
type WishlistService interface {
	Wishlist(ctx context.Context) []collection.Entry
	AddToWishlist(ctx context.Context, product *products.Product) collection.Result
	ClearWishlist(ctx context.Context) collection.Result
}

type transitionResponse struct {
	Outcome collection.Outcome `json:"outcome"`
	Removed int                `json:"removed,omitempty"`
}

type wishlistResponse struct {
	Items []collection.Entry `json:"items"`
}

// CartFetch returns the stored identity's cart entries and total.
func CartFetch(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Cart(r.Context()))
	}
}

// CartAdd adds the posted product. Every outcome, including the silent
// no-ops, is reported with 200.
func CartAdd(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		product, err := decodeProduct(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeTransition(w, svc.AddToCart(ctx, product))
	}
}

// CartClear removes the stored identity's cart entries.
func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		writeTransition(w, svc.ClearCart(r.Context()))
	}
}

// WishlistFetch returns the stored identity's wishlist entries.
func WishlistFetch(svc WishlistService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}
		responses.WriteSuccess(w, wishlistResponse{Items: svc.Wishlist(r.Context())})
	}
}

// WishlistAdd adds the posted product to the wishlist.
func WishlistAdd(svc WishlistService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}
		product, err := decodeProduct(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeTransition(w, svc.AddToWishlist(ctx, product))
	}
}

// WishlistClear removes the stored identity's wishlist entries.
func WishlistClear(svc WishlistService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}
		writeTransition(w, svc.ClearWishlist(r.Context()))
	}
}

// decodeProduct reads a product body. Well-formed JSON that is not a product
// yields a nil product, which the collections reject as a silent no-op.
// Unknown fields are ignored.
func decodeProduct(r *http.Request) (*products.Product, error) {
	raw, err := validators.ReadJSONBody(r)
	if err != nil {
		return nil, err
	}
	var product products.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, nil
	}
	return &product, nil
}

func writeTransition(w http.ResponseWriter, result collection.Result) {
	responses.WriteNotice(w, http.StatusOK, transitionResponse{Outcome: result.Outcome, Removed: result.Removed}, result.Notice)
}
