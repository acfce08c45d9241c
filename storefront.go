// Package storefront is a lightweight meta-package that re-exports from
// submodules. Most programs should import the specific module they need:
//   - github.com/basketw/storefront/core - basket, catalog, and persistence
//   - github.com/basketw/storefront/telemetry - OpenTelemetry integration
package storefront

import (
	"context"

	"github.com/basketw/storefront/core"
)

// Re-export core types so small programs can depend on one import path.
type (
	// Domain types
	Product     = core.Product
	Category    = core.Category
	Price       = core.Price
	BasketLine  = core.BasketLine
	BasketState = core.BasketState

	// Components
	Storefront    = core.Storefront
	BasketStore   = core.BasketStore
	BasketJournal = core.BasketJournal
	DetailSheet   = core.DetailSheet
	Refresher     = core.Refresher
	SessionBroker = core.SessionBroker
	Favorites     = core.Favorites

	// Configuration types
	Config  = core.Config
	Option  = core.Option
	Session = core.Session

	// Interfaces
	Logger        = core.Logger
	Memory        = core.Memory
	Telemetry     = core.Telemetry
	Haptics       = core.Haptics
	CatalogSource = core.CatalogSource

	// Filtering
	FilterCriteria = core.FilterCriteria
)

// Re-export constructors and configuration options.
var (
	NewStorefront  = core.NewStorefront
	NewConfig      = core.NewConfig
	NewBasketStore = core.NewBasketStore

	WithName           = core.WithName
	WithBasketKey      = core.WithBasketKey
	WithMemoryProvider = core.WithMemoryProvider
	WithRedisURL       = core.WithRedisURL
	WithCatalog        = core.WithCatalog
	WithStaticCatalog  = core.WithStaticCatalog
	WithLogLevel       = core.WithLogLevel
	WithLogFormat      = core.WithLogFormat
	WithTelemetry      = core.WithTelemetry
	WithConfigFile     = core.WithConfigFile

	FilterProducts    = core.FilterProducts
	ResolveBundleSize = core.ResolveBundleSize
	BasketTotal       = core.BasketTotal
	FormatTotal       = core.FormatTotal
)

// New assembles a storefront from functional options in one call.
func New(ctx context.Context, opts ...Option) (*Storefront, error) {
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return core.NewStorefront(ctx, cfg, nil)
}
