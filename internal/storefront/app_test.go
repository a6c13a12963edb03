package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/users"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/kv"
)

type fakeCatalog struct {
	products  []products.Product
	users     []users.User
	usersErr  string
	productsN int
}

func (f *fakeCatalog) FetchProducts(context.Context) catalog.Result[[]products.Product] {
	f.productsN++
	return catalog.Result[[]products.Product]{Success: true, Data: f.products}
}

func (f *fakeCatalog) FetchProduct(_ context.Context, id int) catalog.Result[*products.Product] {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return catalog.Result[*products.Product]{Success: true, Data: &p}
		}
	}
	return catalog.Result[*products.Product]{Error: "HTTP error! status: 404"}
}

func (f *fakeCatalog) FetchUsers(context.Context) catalog.Result[[]users.User] {
	if f.usersErr != "" {
		return catalog.Result[[]users.User]{Error: f.usersErr}
	}
	return catalog.Result[[]users.User]{Success: true, Data: f.users}
}

type failingStore struct {
	*kv.Memory
	fail bool
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("quota exceeded")
	}
	return s.Memory.Set(ctx, key, value)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []products.Product{
			{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95")},
			{ID: 2, Title: "T-Shirt", Price: decimal.RequireFromString("22.3")},
		},
		users: []users.User{
			{ID: 1, Email: "a@x.com", Password: "p"},
			{ID: 2, Email: "b@x.com", Password: "q"},
		},
	}
}

func newTestApp(t *testing.T, store kv.Store, cat *fakeCatalog) *App {
	t.Helper()
	app, err := New(context.Background(), Params{Store: store, Catalog: cat})
	require.NoError(t, err)
	require.NoError(t, app.Start(context.Background()))
	return app
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(context.Background(), Params{Catalog: newFakeCatalog()})
	assert.Error(t, err)
	_, err = New(context.Background(), Params{Store: kv.NewMemory()})
	assert.Error(t, err)
}

func TestStartLoadsUsers(t *testing.T) {
	cat := newFakeCatalog()
	app := newTestApp(t, kv.NewMemory(), cat)
	assert.Len(t, app.knownUsers(), 2)
	assert.Equal(t, 1, cat.productsN)
}

func TestStartFailsWhenDirectoryUnavailable(t *testing.T) {
	cat := newFakeCatalog()
	cat.usersErr = "HTTP error! status: 500"
	app, err := New(context.Background(), Params{Store: kv.NewMemory(), Catalog: cat})
	require.NoError(t, err)

	err = app.Start(context.Background())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	ok, _ := app.Login(context.Background(), &users.Credentials{Email: "a@x.com", Password: "p"})
	assert.False(t, ok)
}

func TestShoppingFlow(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, kv.NewMemory(), newFakeCatalog())

	assert.Equal(t, collection.OutcomeUnauthenticated, app.AddToCart(ctx, &products.Product{ID: 1, Price: decimal.NewFromInt(10)}).Outcome)

	ok, notice := app.Login(ctx, &users.Credentials{Email: "a@x.com", Password: "wrong"})
	assert.False(t, ok)
	assert.Equal(t, "Invalid credentials", notice.Text)

	ok, _ = app.Login(ctx, &users.Credentials{Email: "a@x.com", Password: "p"})
	require.True(t, ok)
	assert.True(t, app.Session().LoggedIn)

	backpack := app.Product(ctx, 1)
	require.True(t, backpack.Success)
	tshirt := app.Product(ctx, 2)
	require.True(t, tshirt.Success)

	assert.Equal(t, collection.OutcomeAdded, app.AddToCart(ctx, backpack.Data).Outcome)
	assert.Equal(t, collection.OutcomeAdded, app.AddToCart(ctx, tshirt.Data).Outcome)
	assert.Equal(t, collection.OutcomeDuplicate, app.AddToCart(ctx, backpack.Data).Outcome)
	assert.Equal(t, collection.OutcomeAdded, app.AddToWishlist(ctx, backpack.Data).Outcome)

	view := app.Cart(ctx)
	assert.Len(t, view.Items, 2)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("132.25")), view.Total.String())
	assert.Len(t, app.Wishlist(ctx), 1)

	app.Logout(ctx)
	assert.Empty(t, app.Cart(ctx).Items)
	assert.True(t, app.Cart(ctx).Total.IsZero())

	ok, _ = app.Login(ctx, &users.Credentials{Email: "b@x.com", Password: "q"})
	require.True(t, ok)
	assert.Equal(t, collection.OutcomeAdded, app.AddToCart(ctx, backpack.Data).Outcome)
	assert.Equal(t, collection.OutcomeCleared, app.ClearCart(ctx).Outcome)
	assert.Empty(t, app.Cart(ctx).Items)
	assert.Equal(t, collection.OutcomeCleared, app.ClearWishlist(ctx).Outcome)

	ok, _ = app.Login(ctx, &users.Credentials{Email: "a@x.com", Password: "p"})
	require.True(t, ok)
	assert.Len(t, app.Cart(ctx).Items, 2)
	assert.Len(t, app.Wishlist(ctx), 1)
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	first := newTestApp(t, store, newFakeCatalog())
	ok, _ := first.Login(ctx, &users.Credentials{Email: "b@x.com", Password: "q"})
	require.True(t, ok)
	first.AddToWishlist(ctx, &products.Product{ID: 2})

	second := newTestApp(t, store, newFakeCatalog())
	state := second.Session()
	require.True(t, state.LoggedIn)
	assert.Equal(t, 2, state.User.ID)
	wish := second.Wishlist(ctx)
	require.Len(t, wish, 1)
	assert.Equal(t, 2, wish[0].OwnerUserID)
}

func TestFailedPersistDivergesViews(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Memory: kv.NewMemory()}
	app := newTestApp(t, store, newFakeCatalog())
	store.fail = true

	ok, _ := app.Login(ctx, &users.Credentials{Email: "a@x.com", Password: "p"})
	require.True(t, ok)
	assert.True(t, app.Session().LoggedIn)

	user, err := session.ReadIdentity(ctx, store)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, collection.OutcomeUnauthenticated, app.AddToCart(ctx, &products.Product{ID: 1, Price: decimal.NewFromInt(1)}).Outcome)
}

func TestConcurrentEventsAreSerialized(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, kv.NewMemory(), newFakeCatalog())
	ok, _ := app.Login(ctx, &users.Credentials{Email: "a@x.com", Password: "p"})
	require.True(t, ok)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			app.AddToCart(ctx, &products.Product{ID: 7, Price: decimal.NewFromInt(3)})
		}()
		go func() {
			defer wg.Done()
			app.AddToWishlist(ctx, &products.Product{ID: 7})
		}()
	}
	wg.Wait()

	assert.Len(t, app.Cart(ctx).Items, 1)
	assert.Len(t, app.Wishlist(ctx), 1)
}

func TestPingUsesStorePinger(t *testing.T) {
	app := newTestApp(t, kv.NewMemory(), newFakeCatalog())
	assert.NoError(t, app.Ping(context.Background()))
}
