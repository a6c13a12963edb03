// Package catalog is the read-only boundary to the remote product catalog and
// user directory.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Result is the uniform outcome of every fetch. Failures never surface as Go
// errors; they are reported through Success and Error.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func failed[T any](msg string) Result[T] {
	return Result[T]{Error: msg}
}

// Client fetches products and users over HTTP.
type Client struct {
	httpClient        *http.Client
	productsURL       string
	productDetailsURL string
	usersURL          string
	logg              *logger.Logger
	group             singleflight.Group
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for fetch failures.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		if logg != nil {
			c.logg = logg
		}
	}
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &Client{
		httpClient:        &http.Client{Timeout: timeout},
		productsURL:       strings.TrimSpace(cfg.ProductsURL),
		productDetailsURL: strings.TrimSpace(cfg.ProductDetailsURL),
		usersURL:          strings.TrimSpace(cfg.UsersURL),
		logg:              logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// FetchProducts returns the full product list.
func (c *Client) FetchProducts(ctx context.Context) Result[[]products.Product] {
	var list []products.Product
	if err := c.getJSON(ctx, c.productsURL, &list); err != nil {
		c.logFailure(ctx, "catalog.fetch_products_failed", err)
		return failed[[]products.Product](err.Error())
	}
	return ok(list)
}

// FetchProduct returns a single product. Concurrent calls for the same id
// share one request, which runs detached from any single caller's
// cancellation; each caller stops waiting when its own ctx is done.
func (c *Client) FetchProduct(ctx context.Context, id int) Result[*products.Product] {
	key := strconv.Itoa(id)
	ch := c.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestTimeout())
		defer cancel()

		var product *products.Product
		if err := c.getJSON(shared, c.productDetailsURL+key, &product); err != nil {
			c.logFailure(shared, "catalog.fetch_product_failed", err)
			return failed[*products.Product](err.Error()), nil
		}
		if product == nil {
			return failed[*products.Product](fmt.Sprintf("product %d not found", id)), nil
		}
		return ok(product), nil
	})

	var res Result[*products.Product]
	select {
	case <-ctx.Done():
		return failed[*products.Product](ctx.Err().Error())
	case shared := <-ch:
		res = shared.Val.(Result[*products.Product])
	}
	if res.Data != nil {
		product := *res.Data
		res.Data = &product
	}
	return res
}

func (c *Client) requestTimeout() time.Duration {
	if c.httpClient != nil && c.httpClient.Timeout > 0 {
		return c.httpClient.Timeout
	}
	return defaultTimeout
}

// FetchUsers returns the user directory.
func (c *Client) FetchUsers(ctx context.Context) Result[[]users.User] {
	var list []users.User
	if err := c.getJSON(ctx, c.usersURL, &list); err != nil {
		c.logFailure(ctx, "catalog.fetch_users_failed", err)
		return failed[[]users.User](err.Error())
	}
	return ok(list)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) logFailure(ctx context.Context, msg string, err error) {
	c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), msg)
}
