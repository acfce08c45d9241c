package core

import "sync"

// BasketLine is one aggregated basket entry per product. Quantity is always a
// positive multiple of BundleSize, the bundle size snapshotted when the line
// was first added.
type BasketLine struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	BundleSize int    `json:"bundleSize"`
}

// BasketState is an insertion-ordered sequence of basket lines, unique by
// product id.
type BasketState []BasketLine

// Find returns the line for the given product id, if present.
func (s BasketState) Find(productID string) (BasketLine, bool) {
	for _, line := range s {
		if line.ProductID == productID {
			return line, true
		}
	}
	return BasketLine{}, false
}

// TotalUnits returns the sum of all line quantities.
func (s BasketState) TotalUnits() int {
	units := 0
	for _, line := range s {
		units += line.Quantity
	}
	return units
}

// BasketStore owns the in-memory basket state. All mutations go through its
// methods under a single-writer discipline; reads return copies, so a snapshot
// never changes under the caller.
//
// Every operation is total: mutating a line that does not exist is a no-op,
// never an error. Subscribers (the persistence journal, UI refresh hooks) are
// notified after each mutation that actually changed state.
type BasketStore struct {
	mu        sync.Mutex
	lines     []BasketLine
	logger    Logger
	haptics   Haptics
	telemetry Telemetry
	subs      []func(BasketState)
}

// NewBasketStore creates an empty basket store.
func NewBasketStore() *BasketStore {
	return &BasketStore{
		logger:    &NoOpLogger{},
		haptics:   &NoOpHaptics{},
		telemetry: &NoOpTelemetry{},
	}
}

// SetLogger configures the logger for this basket store
func (b *BasketStore) SetLogger(logger Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// SetHaptics configures the haptic feedback sink
func (b *BasketStore) SetHaptics(h Haptics) {
	if h != nil {
		b.haptics = h
	}
}

// SetTelemetry configures the telemetry sink
func (b *BasketStore) SetTelemetry(t Telemetry) {
	if t != nil {
		b.telemetry = t
	}
}

// Subscribe registers fn to run after every state change, with a snapshot of
// the new state. Subscribers are invoked synchronously in registration order
// while the mutation lock is held, so they must not call back into the store;
// anything slow (persistence writes) should hand off internally.
func (b *BasketStore) Subscribe(fn func(BasketState)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// State returns a snapshot of the current basket state.
func (b *BasketStore) State() BasketState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Len returns the number of basket lines.
func (b *BasketStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Add puts one bundle of the product into the basket. An existing line grows
// by its snapshotted bundle size (the product's current label is ignored for
// merges); otherwise a new line is appended with quantity = bundle size.
//
// The haptic pulse fires before the mutation and unconditionally - a failed
// downstream persistence write must not swallow the feedback.
func (b *BasketStore) Add(product Product) {
	b.haptics.Pulse(HapticMedium)

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID == product.ID {
			b.lines[i].Quantity += b.lines[i].BundleSize
			b.logger.Debug("Basket line increased", map[string]interface{}{
				"operation":   "basket_add",
				"product_id":  product.ID,
				"quantity":    b.lines[i].Quantity,
				"bundle_size": b.lines[i].BundleSize,
			})
			b.changedLocked("add")
			return
		}
	}

	size := ResolveBundleSize(product)
	b.lines = append(b.lines, BasketLine{
		ProductID:  product.ID,
		Quantity:   size,
		BundleSize: size,
	})
	b.logger.Debug("Basket line added", map[string]interface{}{
		"operation":   "basket_add",
		"product_id":  product.ID,
		"quantity":    size,
		"bundle_size": size,
	})
	b.changedLocked("add")
}

// Decrease shrinks the product's line by one bundle. At one bundle the line is
// removed entirely; quantity never lands strictly between zero and the bundle
// size. Absent lines are a no-op.
func (b *BasketStore) Decrease(productID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID != productID {
			continue
		}
		if b.lines[i].Quantity > b.lines[i].BundleSize {
			b.lines[i].Quantity -= b.lines[i].BundleSize
			b.logger.Debug("Basket line decreased", map[string]interface{}{
				"operation":  "basket_decrease",
				"product_id": productID,
				"quantity":   b.lines[i].Quantity,
			})
		} else {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			b.logger.Debug("Basket line removed at floor", map[string]interface{}{
				"operation":  "basket_decrease",
				"product_id": productID,
			})
		}
		b.changedLocked("decrease")
		return
	}
}

// Remove deletes the product's line outright. Absent lines are a no-op, so
// calling Remove twice for the same id is safe.
func (b *BasketStore) Remove(productID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID != productID {
			continue
		}
		b.lines = append(b.lines[:i], b.lines[i+1:]...)
		b.logger.Debug("Basket line removed", map[string]interface{}{
			"operation":  "basket_remove",
			"product_id": productID,
		})
		b.changedLocked("remove")
		return
	}
}

// Clear empties the basket. An already-empty basket is a no-op.
func (b *BasketStore) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.lines) == 0 {
		return
	}
	b.lines = nil
	b.logger.Debug("Basket cleared", map[string]interface{}{
		"operation": "basket_clear",
	})
	b.changedLocked("clear")
}

// Replace swaps in a restored state wholesale. Used by the persistence journal
// on startup. Snapshots are untrusted: later lines with duplicate product ids
// are dropped, as are lines whose quantity is not a positive multiple of the
// bundle size - otherwise a decrease could strand a quantity below one bundle.
func (b *BasketStore) Replace(state BasketState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(state))
	lines := make([]BasketLine, 0, len(state))
	for _, line := range state {
		if seen[line.ProductID] {
			continue
		}
		if line.BundleSize < 1 || line.Quantity < line.BundleSize || line.Quantity%line.BundleSize != 0 {
			continue
		}
		seen[line.ProductID] = true
		lines = append(lines, line)
	}
	b.lines = lines
	b.changedLocked("replace")
}

// changedLocked records the mutation and fans the new snapshot out to
// subscribers. Caller holds b.mu.
func (b *BasketStore) changedLocked(op string) {
	b.telemetry.RecordMetric("basket.mutations", 1, map[string]string{"op": op})
	snapshot := b.snapshotLocked()
	for _, fn := range b.subs {
		fn(snapshot)
	}
}

func (b *BasketStore) snapshotLocked() BasketState {
	snapshot := make(BasketState, len(b.lines))
	copy(snapshot, b.lines)
	return snapshot
}
