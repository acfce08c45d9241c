package core

import "sync"

// DetailSheet is the interaction state machine behind the product detail
// overlay: select a product, adjust a pending quantity, commit that many adds
// to the basket in one gesture.
//
// The pending quantity counts how many times Add is invoked on commit. It is
// a different axis from the bundle size: committing 3 of a six-pack product
// adds three bundles, 18 units. It initializes to 1 on open regardless of the
// product's bundle size and clamps at a minimum of 1.
//
// The sheet owns no persisted state; its only output is basket mutations.
type DetailSheet struct {
	mu      sync.Mutex
	basket  *BasketStore
	haptics Haptics
	logger  Logger

	product *Product
	pending int
}

// NewDetailSheet creates a closed sheet bound to the basket store.
func NewDetailSheet(basket *BasketStore) *DetailSheet {
	return &DetailSheet{
		basket:  basket,
		haptics: &NoOpHaptics{},
		logger:  &NoOpLogger{},
	}
}

// SetHaptics configures the haptic feedback sink
func (d *DetailSheet) SetHaptics(h Haptics) {
	if h != nil {
		d.haptics = h
	}
}

// SetLogger configures the logger for this sheet
func (d *DetailSheet) SetLogger(logger Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Open presents the sheet for a product with a pending quantity of 1.
// Opening while already open switches to the new product and resets the
// pending quantity.
func (d *DetailSheet) Open(product Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := product
	d.product = &p
	d.pending = 1
}

// IsOpen reports whether a product is currently presented.
func (d *DetailSheet) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.product != nil
}

// Product returns the selected product while open.
func (d *DetailSheet) Product() (Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product == nil {
		return Product{}, false
	}
	return *d.product, true
}

// Pending returns the pending quantity; 0 when closed.
func (d *DetailSheet) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Increment raises the pending quantity by one. No-op while closed.
func (d *DetailSheet) Increment() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product == nil {
		return
	}
	d.haptics.Pulse(HapticLight)
	d.pending++
}

// Decrement lowers the pending quantity by one, clamped at 1. Decrementing at
// the floor still pulses - the tap happened - but leaves the quantity alone.
func (d *DetailSheet) Decrement() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product == nil {
		return
	}
	d.haptics.Pulse(HapticLight)
	if d.pending > 1 {
		d.pending--
	}
}

// Commit adds the selected product to the basket pending-quantity times, then
// resets and closes the sheet. No-op while closed.
func (d *DetailSheet) Commit() {
	d.mu.Lock()
	if d.product == nil {
		d.mu.Unlock()
		return
	}
	product := *d.product
	count := d.pending
	d.product = nil
	d.pending = 0
	d.mu.Unlock()

	d.logger.Debug("Committing sheet quantity", map[string]interface{}{
		"operation":  "sheet_commit",
		"product_id": product.ID,
		"count":      count,
	})
	for i := 0; i < count; i++ {
		d.basket.Add(product)
	}
}

// Dismiss closes the sheet and discards the pending quantity without touching
// the basket.
func (d *DetailSheet) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.product = nil
	d.pending = 0
}
