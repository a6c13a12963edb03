package wishlist

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/collection"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/kv"
)

func TestValidateChecksIDOnly(t *testing.T) {
	if Validate(nil) {
		t.Fatalf("nil product must be rejected")
	}
	if Validate(&products.Product{Price: decimal.NewFromInt(5)}) {
		t.Fatalf("product without id must be rejected")
	}
	if !Validate(&products.Product{ID: 3}) {
		t.Fatalf("zero price product with id must be accepted")
	}
}

func TestWishlistIndependentOfCart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	encoded, _ := session.EncodeIdentity(&users.User{ID: 2})
	_ = store.Set(ctx, session.KeyCurrentUser, encoded)

	wish, err := New(ctx, ServiceParams{Store: store})
	if err != nil {
		t.Fatalf("new wishlist: %v", err)
	}
	c, err := cart.New(ctx, cart.ServiceParams{Store: store})
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}

	free := &products.Product{ID: 3}
	if res := wish.Add(ctx, free); res.Outcome != collection.OutcomeAdded || res.Notice.Text != "Item added to wishlist" {
		t.Fatalf("unexpected wishlist result %+v", res)
	}
	if res := c.Add(ctx, free); res.Outcome != collection.OutcomeRejected {
		t.Fatalf("cart must reject zero price, got %s", res.Outcome)
	}
	if res := wish.Add(ctx, free); res.Outcome != collection.OutcomeDuplicate || res.Notice.Text != "Item already added to wishlist" {
		t.Fatalf("unexpected duplicate result %+v", res)
	}

	wish.Clear(ctx)
	if len(wish.Items()) != 0 {
		t.Fatalf("expected wishlist cleared")
	}
	if _, err := store.Get(ctx, StorageKey); err != nil {
		t.Fatalf("expected wishlist persisted: %v", err)
	}
}
