package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/session"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/kv"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/notify"
)

// Policy is what distinguishes one collection from another.
type Policy struct {
	Name            string
	StorageKey      string
	Validate        Validator
	AddedNotice     notify.Notice
	DuplicateNotice notify.Notice
}

// Result reports what a transition did.
type Result struct {
	Outcome Outcome       `json:"outcome"`
	Notice  notify.Notice `json:"notice,omitzero"`
	Removed int           `json:"removed,omitempty"`
}

// Params groups dependencies for a collection.
type Params struct {
	Policy   Policy
	Store    kv.Store
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Notifier notify.Notifier
}

// Collection is the stateful wrapper around Add and Clear. Every mutation is
// gated on the identity persisted in the store, never on in-memory session
// state, and the resulting entries are mirrored under Policy.StorageKey.
type Collection struct {
	policy   Policy
	store    kv.Store
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	notifier notify.Notifier

	mu    sync.Mutex
	items []Entry
}

// New builds a collection and reloads its entries from the store. Unreadable
// or malformed persisted entries are logged and the collection starts empty.
func New(ctx context.Context, params Params) (*Collection, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection store is required")
	}
	if params.Policy.Name == "" || params.Policy.StorageKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection policy requires name and storage key")
	}
	if params.Policy.Validate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection policy requires a validator")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Discard
	}

	c := &Collection{
		policy:   params.Policy,
		store:    params.Store,
		logg:     logg,
		metrics:  params.Metrics,
		notifier: notifier,
		items:    []Entry{},
	}

	items, err := c.load(ctx)
	if err != nil {
		c.metrics.IncStorageFailure("get")
		c.logg.Error(c.logCtx(ctx), "collection.load_failed", err)
	} else {
		c.items = items
	}
	return c, nil
}

// Name returns the policy name.
func (c *Collection) Name() string {
	return c.policy.Name
}

// Add stamps product with the persisted identity and appends it.
func (c *Collection) Add(ctx context.Context, product *products.Product) Result {
	ctx = c.logCtx(ctx)
	owner := c.owner(ctx)

	c.mu.Lock()
	next, outcome := Add(c.items, owner, product, c.policy.Validate)
	changed := outcome == OutcomeAdded
	if changed {
		c.items = next
	}
	snapshot := c.items
	c.mu.Unlock()

	result := Result{Outcome: outcome}
	switch outcome {
	case OutcomeAdded:
		result.Notice = c.policy.AddedNotice
	case OutcomeDuplicate:
		result.Notice = c.policy.DuplicateNotice
	}

	if owner != 0 {
		ctx = c.logg.WithUserID(ctx, owner)
	}
	if product != nil {
		ctx = c.logg.WithField(ctx, "product_id", product.ID)
	}
	if changed {
		c.persist(ctx, snapshot)
	}
	c.record(ctx, "add", result)
	return result
}

// Clear removes the persisted identity's entries, leaving other users' entries
// in their original order.
func (c *Collection) Clear(ctx context.Context) Result {
	ctx = c.logCtx(ctx)
	owner := c.owner(ctx)
	if owner == 0 {
		result := Result{Outcome: OutcomeUnauthenticated}
		c.record(ctx, "clear", result)
		return result
	}
	ctx = c.logg.WithUserID(ctx, owner)

	c.mu.Lock()
	next, removed := Clear(c.items, owner)
	if removed > 0 {
		c.items = next
	}
	snapshot := c.items
	c.mu.Unlock()

	if removed > 0 {
		c.persist(ctx, snapshot)
	}
	result := Result{Outcome: OutcomeCleared, Removed: removed}
	c.record(ctx, "clear", result)
	return result
}

// Items returns a copy of every entry, across all users.
func (c *Collection) Items() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.items))
	copy(out, c.items)
	return out
}

// ItemsFor returns the persisted identity's entries. Without an identity the
// result is empty.
func (c *Collection) ItemsFor(ctx context.Context) []Entry {
	owner := c.owner(c.logCtx(ctx))
	c.mu.Lock()
	defer c.mu.Unlock()
	return OwnedBy(c.items, owner)
}

func (c *Collection) owner(ctx context.Context) int {
	user, err := session.ReadIdentity(ctx, c.store)
	if err != nil {
		c.metrics.IncStorageFailure("get")
		c.logg.Error(ctx, "collection.identity_read_failed", err)
		return 0
	}
	if user == nil {
		return 0
	}
	return user.ID
}

func (c *Collection) load(ctx context.Context) ([]Entry, error) {
	raw, err := c.store.Get(ctx, c.policy.StorageKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.policy.StorageKey, err)
	}
	if raw == "" || raw == "null" {
		return []Entry{}, nil
	}
	var items []Entry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.policy.StorageKey, err)
	}
	if items == nil {
		items = []Entry{}
	}
	return items, nil
}

func (c *Collection) persist(ctx context.Context, items []Entry) {
	payload, err := json.Marshal(items)
	if err != nil {
		c.logg.Error(ctx, "collection.encode_failed", err)
		return
	}
	if err := c.store.Set(ctx, c.policy.StorageKey, string(payload)); err != nil {
		c.metrics.IncStorageFailure("set")
		c.logg.Error(ctx, "collection.persist_failed", err)
	}
}

func (c *Collection) record(ctx context.Context, op string, result Result) {
	c.metrics.IncCollection(c.policy.Name, op, string(result.Outcome))
	ctx = c.logg.WithField(ctx, "outcome", string(result.Outcome))
	c.logg.Info(ctx, "collection."+op)
	if !result.Notice.IsZero() {
		c.notifier.Notify(ctx, result.Notice)
	}
}

func (c *Collection) logCtx(ctx context.Context) context.Context {
	return c.logg.WithCollection(ctx, c.policy.Name)
}
