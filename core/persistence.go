// Basket persistence: serializes the basket state to the scoped persistence
// store after every mutation and restores it on startup.
//
// The write path is a best-effort side channel. Basket mutations are always
// optimistic with respect to persistence: the in-memory state transition has
// already happened by the time the write is issued, and a failed write is
// logged but never rolled back or surfaced to the user. The read path swallows
// corruption the same way - an unparsable snapshot restores to an empty basket.
//
// The wire format is a JSON array of {productId, quantity, bundleSize}
// records. It is internal to this package, not a public contract.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBasketKey is the fixed key the basket snapshot is stored under.
const DefaultBasketKey = "storefront:basket"

// BasketJournal persists basket state through a Memory store.
type BasketJournal struct {
	store  Memory
	key    string
	logger Logger

	// wg tracks in-flight background writes so tests and shutdown paths can
	// drain them.
	wg sync.WaitGroup

	// writeMu serializes background writes; seq lets a queued write detect it
	// has been superseded and skip the store round-trip.
	writeMu sync.Mutex
	seq     uint64

	writeTimeout time.Duration
}

// NewBasketJournal creates a journal over the given store. An empty key falls
// back to DefaultBasketKey.
func NewBasketJournal(store Memory, key string) *BasketJournal {
	if key == "" {
		key = DefaultBasketKey
	}
	return &BasketJournal{
		store:        store,
		key:          key,
		logger:       &NoOpLogger{},
		writeTimeout: 5 * time.Second,
	}
}

// SetLogger configures the logger for this journal
func (j *BasketJournal) SetLogger(logger Logger) {
	if logger != nil {
		j.logger = logger
	}
}

// Restore reads the persisted snapshot. A missing key restores an empty
// basket. A corrupt payload also restores an empty basket: the error is
// logged, the snapshot is discarded, and no failure reaches the caller as
// anything other than a fresh start.
func (j *BasketJournal) Restore(ctx context.Context) BasketState {
	payload, err := j.store.Get(ctx, j.key)
	if err != nil {
		j.logger.Warn("Basket restore failed, starting empty", map[string]interface{}{
			"operation": "basket_restore",
			"key":       j.key,
			"error":     err.Error(),
		})
		return BasketState{}
	}
	if payload == "" {
		return BasketState{}
	}

	var state BasketState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		j.logger.Warn("Discarding corrupt basket snapshot", map[string]interface{}{
			"operation":    "basket_restore",
			"key":          j.key,
			"payload_size": len(payload),
			"error":        fmt.Sprintf("%v: %v", ErrCorruptSnapshot, err),
		})
		return BasketState{}
	}
	return state
}

// Persist writes the state snapshot under the journal key. The returned error
// is informational; callers on the mutation path go through Attach and never
// block on it.
func (j *BasketJournal) Persist(ctx context.Context, state BasketState) error {
	if state == nil {
		state = BasketState{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		// A slice of plain structs cannot fail to marshal; kept for totality.
		return &StorefrontError{Op: "journal.Persist", Kind: "basket", Err: err}
	}
	if err := j.store.Set(ctx, j.key, string(payload), 0); err != nil {
		return &StorefrontError{Op: "journal.Persist", Kind: "basket", Err: err}
	}
	return nil
}

// Attach subscribes the journal to a basket store and replays any persisted
// snapshot into it. Every subsequent mutation schedules a background write;
// write failures are logged and dropped.
func (j *BasketJournal) Attach(ctx context.Context, basket *BasketStore) {
	if restored := j.Restore(ctx); len(restored) > 0 {
		basket.Replace(restored)
		j.logger.Info("Basket restored", map[string]interface{}{
			"operation": "basket_restore",
			"lines":     len(restored),
		})
	}

	basket.Subscribe(func(state BasketState) {
		seq := atomic.AddUint64(&j.seq, 1)
		j.wg.Add(1)
		go func() {
			defer j.wg.Done()
			j.writeMu.Lock()
			defer j.writeMu.Unlock()
			if atomic.LoadUint64(&j.seq) != seq {
				// A newer snapshot is already queued behind us.
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), j.writeTimeout)
			defer cancel()
			if err := j.Persist(writeCtx, state); err != nil {
				j.logger.Error("Basket persist failed", map[string]interface{}{
					"operation": "basket_persist",
					"key":       j.key,
					"lines":     len(state),
					"error":     err.Error(),
				})
			}
		}()
	})
}

// Flush blocks until all scheduled background writes have completed.
func (j *BasketJournal) Flush() {
	j.wg.Wait()
}
