package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Refresher coordinates the combined products + categories refresh and holds
// the latest fetched collections for the UI to read.
//
// Every Refresh call is tagged with a generation number. Results only land if
// no newer refresh has been issued since, so a slow early pull-to-refresh can
// never overwrite the result of a later one - completion order stops mattering,
// issuance order wins.
//
// A failed fetch degrades that cycle to an empty collection for rendering
// ("no products available", never a raw error), while the error still reaches
// the caller that awaited the refresh so it can report partial failure.
type Refresher struct {
	source    CatalogSource
	logger    Logger
	telemetry Telemetry

	gen      uint64
	inflight int32

	mu         sync.RWMutex
	applied    uint64
	products   []Product
	categories []Category
}

// NewRefresher creates a refresher over the given catalog source.
func NewRefresher(source CatalogSource) *Refresher {
	return &Refresher{
		source:    source,
		logger:    &NoOpLogger{},
		telemetry: &NoOpTelemetry{},
	}
}

// SetLogger configures the logger for this refresher
func (r *Refresher) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// SetTelemetry configures the telemetry sink
func (r *Refresher) SetTelemetry(t Telemetry) {
	if t != nil {
		r.telemetry = t
	}
}

// Refresh fetches both collections. Each collection that fails comes back
// empty for this cycle; the joined error reports which fetches failed. A
// refresh superseded by a newer one returns ErrStaleRefresh and leaves the
// held collections alone.
func (r *Refresher) Refresh(ctx context.Context) error {
	gen := atomic.AddUint64(&r.gen, 1)
	atomic.AddInt32(&r.inflight, 1)
	defer atomic.AddInt32(&r.inflight, -1)

	ctx, span := r.telemetry.StartSpan(ctx, "catalog.refresh")
	defer span.End()

	products, productsErr := r.source.FetchProducts(ctx)
	if productsErr != nil {
		r.logger.Warn("Product fetch failed, rendering empty", map[string]interface{}{
			"operation": "refresh",
			"error":     productsErr.Error(),
		})
		span.RecordError(productsErr)
		products = []Product{}
	}

	categories, categoriesErr := r.source.FetchCategories(ctx)
	if categoriesErr != nil {
		r.logger.Warn("Category fetch failed, rendering empty", map[string]interface{}{
			"operation": "refresh",
			"error":     categoriesErr.Error(),
		})
		span.RecordError(categoriesErr)
		categories = []Category{}
	}

	span.SetAttribute("products", len(products))
	span.SetAttribute("categories", len(categories))

	r.mu.Lock()
	if r.applied > gen {
		// A newer refresh already landed; drop this result.
		r.mu.Unlock()
		r.logger.Debug("Dropping stale refresh result", map[string]interface{}{
			"operation":  "refresh",
			"generation": gen,
		})
		return ErrStaleRefresh
	}
	r.applied = gen
	r.products = products
	r.categories = categories
	r.mu.Unlock()

	r.telemetry.RecordMetric("catalog.refreshes", 1, map[string]string{
		"result": refreshResult(productsErr, categoriesErr),
	})

	return errors.Join(productsErr, categoriesErr)
}

func refreshResult(productsErr, categoriesErr error) string {
	switch {
	case productsErr == nil && categoriesErr == nil:
		return "ok"
	case productsErr != nil && categoriesErr != nil:
		return "failed"
	default:
		return "partial"
	}
}

// Products returns a snapshot of the latest fetched products.
func (r *Refresher) Products() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// Categories returns a snapshot of the latest fetched categories.
func (r *Refresher) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Refreshing reports whether any refresh is in flight, for the loading
// indicator.
func (r *Refresher) Refreshing() bool {
	return atomic.LoadInt32(&r.inflight) > 0
}
