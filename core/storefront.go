package core

import "context"

// Storefront wires the core components together from a Config: one basket
// store constructed at app start and passed by reference to whatever consumes
// it, its persistence journal, the catalog refresher, the detail sheet, the
// session broker, and favorites. It lives for the process lifetime by design;
// there is no teardown beyond Close releasing the store connection.
type Storefront struct {
	Config    *Config
	Logger    Logger
	Store     Memory
	Basket    *BasketStore
	Journal   *BasketJournal
	Catalog   CatalogSource
	Refresher *Refresher
	Sheet     *DetailSheet
	Sessions  *SessionBroker
	Favorites *Favorites

	closers []func() error
}

// NewStorefront assembles a storefront from the configuration and restores
// any persisted basket snapshot. The optional telemetry sink may be nil.
func NewStorefront(ctx context.Context, cfg *Config, telemetry Telemetry) (*Storefront, error) {
	if cfg == nil {
		return nil, &StorefrontError{
			Op:   "NewStorefront",
			Kind: "config",
			Err:  ErrMissingConfiguration,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := NewStdLogger(cfg.Logging.Level, cfg.Logging.Format)

	s := &Storefront{
		Config: cfg,
		Logger: logger,
	}

	store, err := s.buildStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	s.Store = store

	catalog, err := s.buildCatalog(cfg, logger, telemetry)
	if err != nil {
		return nil, err
	}
	s.Catalog = catalog

	s.Basket = NewBasketStore()
	s.Basket.SetLogger(logger)
	if telemetry != nil {
		s.Basket.SetTelemetry(telemetry)
	}

	s.Journal = NewBasketJournal(store, cfg.Basket.Key)
	s.Journal.SetLogger(logger)
	s.Journal.Attach(ctx, s.Basket)

	s.Refresher = NewRefresher(catalog)
	s.Refresher.SetLogger(logger)
	if telemetry != nil {
		s.Refresher.SetTelemetry(telemetry)
	}

	s.Sheet = NewDetailSheet(s.Basket)
	s.Sheet.SetLogger(logger)

	s.Sessions = NewSessionBroker()
	s.Sessions.SetLogger(logger)

	s.Favorites = NewFavorites(store)
	s.Favorites.SetLogger(logger)

	logger.Info("Storefront assembled", map[string]interface{}{
		"name":             cfg.Name,
		"memory_provider":  cfg.Memory.Provider,
		"catalog_provider": cfg.Catalog.Provider,
		"basket_lines":     s.Basket.Len(),
	})

	return s, nil
}

// SetHaptics routes device feedback into the basket and sheet.
func (s *Storefront) SetHaptics(h Haptics) {
	s.Basket.SetHaptics(h)
	s.Sheet.SetHaptics(h)
}

// ToggleFavorite flips the favorite state of a product for the signed-in
// user. Returns ErrNotSignedIn while signed out; the UI shows the sign-in
// prompt instead of a heart.
func (s *Storefront) ToggleFavorite(ctx context.Context, productID string) error {
	session, ok := s.Sessions.Current()
	if !ok {
		return &StorefrontError{
			Op:   "Storefront.ToggleFavorite",
			Kind: "favorites",
			ID:   productID,
			Err:  ErrNotSignedIn,
		}
	}
	if s.Favorites.IsFavorite(ctx, session.UserID, productID) {
		return s.Favorites.Remove(ctx, session.UserID, productID)
	}
	return s.Favorites.Add(ctx, session.UserID, productID)
}

// Close drains pending basket writes and releases store connections.
func (s *Storefront) Close() error {
	s.Journal.Flush()
	var first error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Storefront) buildStore(cfg *Config, logger Logger) (Memory, error) {
	switch cfg.Memory.Provider {
	case "redis":
		store, err := NewRedisStore(RedisStoreOptions{
			RedisURL:  cfg.Memory.RedisURL,
			Namespace: cfg.Memory.Namespace,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, store.Close)
		return store, nil
	default:
		store := NewMemoryStore()
		store.SetLogger(logger)
		return store, nil
	}
}

func (s *Storefront) buildCatalog(cfg *Config, logger Logger, telemetry Telemetry) (CatalogSource, error) {
	switch cfg.Catalog.Provider {
	case "static":
		return NewStaticSource(nil, nil), nil
	default:
		opts := RESTCatalogOptions{
			BaseURL: cfg.Catalog.BaseURL,
			APIKey:  cfg.Catalog.APIKey,
			Timeout: cfg.Catalog.Timeout,
			Logger:  logger,
		}
		// Trace outbound catalog requests when the telemetry sink can.
		if instrumenter, ok := telemetry.(HTTPInstrumenter); ok {
			opts.Transport = instrumenter.HTTPTransport(nil)
		}
		return NewRESTCatalog(opts)
	}
}
