// Package storefront dispatches user events to the session and the
// user-scoped collections one at a time.
package storefront

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/internal/wishlist"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/notify"
)

// Catalog is the data-fetch boundary the app reads from.
type Catalog interface {
	FetchProducts(ctx context.Context) catalog.Result[[]products.Product]
	FetchProduct(ctx context.Context, id int) catalog.Result[*products.Product]
	FetchUsers(ctx context.Context) catalog.Result[[]users.User]
}

// Params groups dependencies for the app.
type Params struct {
	Store    kv.Store
	Catalog  Catalog
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Notifier notify.Notifier
}

// CartView is the active user's cart.
type CartView struct {
	Items []collection.Entry `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// App owns the session, cart and wishlist. Transitions hold mu for their whole
// duration; catalog fetches never do.
type App struct {
	store   kv.Store
	catalog Catalog
	logg    *logger.Logger

	mu       sync.Mutex
	session  *session.Manager
	cart     *collection.Collection
	wishlist *collection.Collection

	usersMu sync.RWMutex
	users   []users.User
}

// New restores the session and both collections from the store.
func New(ctx context.Context, params Params) (*App, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	sess, err := session.NewManager(ctx, session.ManagerParams{
		Store:    params.Store,
		Logger:   logg,
		Metrics:  params.Metrics,
		Notifier: params.Notifier,
	})
	if err != nil {
		return nil, err
	}
	cartCollection, err := cart.New(ctx, cart.ServiceParams{
		Store:    params.Store,
		Logger:   logg,
		Metrics:  params.Metrics,
		Notifier: params.Notifier,
	})
	if err != nil {
		return nil, err
	}
	wishlistCollection, err := wishlist.New(ctx, wishlist.ServiceParams{
		Store:    params.Store,
		Logger:   logg,
		Metrics:  params.Metrics,
		Notifier: params.Notifier,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		store:    params.Store,
		catalog:  params.Catalog,
		logg:     logg,
		session:  sess,
		cart:     cartCollection,
		wishlist: wishlistCollection,
	}, nil
}

// Start loads the user directory and checks the product catalog concurrently.
// A failed product check is logged only; a failed directory load is returned.
func (a *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.LoadUsers(gctx)
	})
	g.Go(func() error {
		res := a.catalog.FetchProducts(gctx)
		if !res.Success {
			a.logg.Warn(a.logg.WithField(gctx, "error", res.Error), "storefront.catalog_unreachable")
			return nil
		}
		a.logg.Info(a.logg.WithField(gctx, "count", len(res.Data)), "storefront.catalog_ready")
		return nil
	})
	return g.Wait()
}

// LoadUsers fetches the user directory once and keeps it for Login.
func (a *App) LoadUsers(ctx context.Context) error {
	res := a.catalog.FetchUsers(ctx)
	if !res.Success {
		return pkgerrors.New(pkgerrors.CodeDependency, "load user directory").WithDetails(res.Error)
	}
	a.SetUsers(res.Data)
	a.logg.Info(a.logg.WithField(ctx, "count", len(res.Data)), "storefront.users_loaded")
	return nil
}

// SetUsers replaces the known user directory.
func (a *App) SetUsers(list []users.User) {
	cp := make([]users.User, len(list))
	copy(cp, list)
	a.usersMu.Lock()
	a.users = cp
	a.usersMu.Unlock()
}

func (a *App) knownUsers() []users.User {
	a.usersMu.RLock()
	defer a.usersMu.RUnlock()
	return a.users
}

// Login validates creds against the loaded directory.
func (a *App) Login(ctx context.Context, creds *users.Credentials) (bool, notify.Notice) {
	known := a.knownUsers()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Login(ctx, creds, known)
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Logout(ctx)
}

// AddToCart adds product to the active user's cart.
func (a *App) AddToCart(ctx context.Context, product *products.Product) collection.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Add(ctx, product)
}

// ClearCart empties the active user's cart.
func (a *App) ClearCart(ctx context.Context) collection.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Clear(ctx)
}

// AddToWishlist adds product to the active user's wishlist.
func (a *App) AddToWishlist(ctx context.Context, product *products.Product) collection.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wishlist.Add(ctx, product)
}

// ClearWishlist empties the active user's wishlist.
func (a *App) ClearWishlist(ctx context.Context) collection.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wishlist.Clear(ctx)
}

// Cart returns the active user's cart with its total.
func (a *App) Cart(ctx context.Context) CartView {
	a.mu.Lock()
	defer a.mu.Unlock()
	items := a.cart.ItemsFor(ctx)
	return CartView{Items: items, Total: cart.Total(items)}
}

// Wishlist returns the active user's wishlist.
func (a *App) Wishlist(ctx context.Context) []collection.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wishlist.ItemsFor(ctx)
}

// Session returns the in-memory session view.
func (a *App) Session() session.State {
	return a.session.State()
}

// Products passes through to the catalog.
func (a *App) Products(ctx context.Context) catalog.Result[[]products.Product] {
	return a.catalog.FetchProducts(ctx)
}

// Product passes through to the catalog.
func (a *App) Product(ctx context.Context, id int) catalog.Result[*products.Product] {
	return a.catalog.FetchProduct(ctx, id)
}

// Ping checks the durable store when it supports health checks.
func (a *App) Ping(ctx context.Context) error {
	if pinger, ok := a.store.(kv.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
