package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/products"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// CatalogService reads the remote product catalog.
type CatalogService interface {
	Products(ctx context.Context) catalog.Result[[]products.Product]
	Product(ctx context.Context, id int) catalog.Result[*products.Product]
}

// ProductList proxies the remote product list.
func ProductList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		res := svc.Products(ctx)
		if !res.Success {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog request failed").WithDetails(res.Error))
			return
		}
		list := res.Data
		if list == nil {
			list = []products.Product{}
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductDetail proxies a single remote product.
func ProductDetail(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		id, err := validators.ParsePathInt(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		res := svc.Product(ctx, id)
		if !res.Success {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog request failed").WithDetails(res.Error))
			return
		}
		responses.WriteSuccess(w, res.Data)
	}
}
