package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CatalogSource is the remote collection accessor: the external read
// interface returning product and category rows. It is a black box to the
// rest of the core; either implementation below (or a caller's own) can be
// swapped in.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]Product, error)
	FetchCategories(ctx context.Context) ([]Category, error)
}

// RESTCatalog fetches rows from a hosted PostgREST-style backend. Products
// are served from /rest/v1/products filtered to available featured rows,
// newest first - the query the storefront has always issued.
type RESTCatalog struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  Logger
}

// RESTCatalogOptions configures the REST catalog
type RESTCatalogOptions struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration     // Defaults to 30s
	Logger    Logger            // Optional logger
	Transport http.RoundTripper // Optional transport, e.g. a traced one
}

// NewRESTCatalog creates a catalog client for the hosted backend.
func NewRESTCatalog(opts RESTCatalogOptions) (*RESTCatalog, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required: %w", ErrMissingConfiguration)
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", ErrInvalidConfiguration)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &RESTCatalog{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: timeout, Transport: opts.Transport},
		logger:  logger,
	}, nil
}

// FetchProducts returns the available featured products, newest first.
// Availability is filtered at this boundary; downstream filtering never sees
// unavailable rows.
func (c *RESTCatalog) FetchProducts(ctx context.Context) ([]Product, error) {
	const query = "/rest/v1/products?select=*&is_available=eq.true&featured=eq.true&order=created_at.desc"

	var products []Product
	if err := c.getJSON(ctx, query, &products); err != nil {
		return nil, err
	}
	c.logger.Debug("Fetched products", map[string]interface{}{
		"operation": "fetch_products",
		"count":     len(products),
	})
	return products, nil
}

// FetchCategories returns the remote category rows.
func (c *RESTCatalog) FetchCategories(ctx context.Context) ([]Category, error) {
	const query = "/rest/v1/categories?select=*&order=id.asc"

	var categories []Category
	if err := c.getJSON(ctx, query, &categories); err != nil {
		return nil, err
	}
	c.logger.Debug("Fetched categories", map[string]interface{}{
		"operation": "fetch_categories",
		"count":     len(categories),
	})
	return categories, nil
}

// getJSON performs a GET against the backend and decodes the row array.
func (c *RESTCatalog) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &StorefrontError{Op: "catalog.get", Kind: "catalog", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Catalog request failed", map[string]interface{}{
			"operation": "catalog_get",
			"path":      path,
			"error":     err.Error(),
		})
		return &StorefrontError{Op: "catalog.get", Kind: "catalog", Err: ErrConnectionFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("Catalog request rejected", map[string]interface{}{
			"operation": "catalog_get",
			"path":      path,
			"status":    resp.StatusCode,
			"body":      string(body),
		})
		return &StorefrontError{
			Op:   "catalog.get",
			Kind: "catalog",
			ID:   fmt.Sprintf("status_%d", resp.StatusCode),
			Err:  ErrRequestFailed,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StorefrontError{Op: "catalog.get", Kind: "catalog", Err: err}
	}
	return nil
}

// StaticSource serves a fixed product and category collection. It backs
// deployments without a remote category table (the storefront shipped with a
// hardcoded category strip for a while) and keeps tests hermetic.
type StaticSource struct {
	Products   []Product
	Categories []Category
}

// NewStaticSource creates a source over fixed collections. Nil categories
// fall back to the built-in StaticCategories set.
func NewStaticSource(products []Product, categories []Category) *StaticSource {
	if categories == nil {
		categories = StaticCategories()
	}
	return &StaticSource{Products: products, Categories: categories}
}

func (s *StaticSource) FetchProducts(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(s.Products))
	copy(out, s.Products)
	return out, nil
}

func (s *StaticSource) FetchCategories(ctx context.Context) ([]Category, error) {
	out := make([]Category, len(s.Categories))
	copy(out, s.Categories)
	return out, nil
}
