package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FavoriteRecord is one saved product for one user.
type FavoriteRecord struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorites keeps each user's saved products in the scoped persistence store,
// one JSON document per user. Like the basket journal, reads degrade
// silently: a missing or corrupt document is an empty favorites list, never a
// user-facing failure.
type Favorites struct {
	store  Memory
	logger Logger
}

// NewFavorites creates a favorites collection over the given store.
func NewFavorites(store Memory) *Favorites {
	return &Favorites{
		store:  store,
		logger: &NoOpLogger{},
	}
}

// SetLogger configures the logger for this favorites collection
func (f *Favorites) SetLogger(logger Logger) {
	if logger != nil {
		f.logger = logger
	}
}

func favoritesKey(userID string) string {
	return fmt.Sprintf("storefront:favorites:%s", userID)
}

// List returns the user's favorite records, oldest first.
func (f *Favorites) List(ctx context.Context, userID string) []FavoriteRecord {
	payload, err := f.store.Get(ctx, favoritesKey(userID))
	if err != nil || payload == "" {
		if err != nil {
			f.logger.Warn("Favorites read failed, returning empty", map[string]interface{}{
				"operation": "favorites_list",
				"user_id":   userID,
				"error":     err.Error(),
			})
		}
		return []FavoriteRecord{}
	}

	var records []FavoriteRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		f.logger.Warn("Discarding corrupt favorites document", map[string]interface{}{
			"operation": "favorites_list",
			"user_id":   userID,
			"error":     err.Error(),
		})
		return []FavoriteRecord{}
	}
	return records
}

// ProductIDs returns just the favorited product ids, oldest first.
func (f *Favorites) ProductIDs(ctx context.Context, userID string) []string {
	records := f.List(ctx, userID)
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ProductID)
	}
	return ids
}

// Add favorites a product for a user. Favoriting an already-favorited
// product is a no-op; one record per (user, product).
func (f *Favorites) Add(ctx context.Context, userID, productID string) error {
	records := f.List(ctx, userID)
	for _, rec := range records {
		if rec.ProductID == productID {
			return nil
		}
	}
	records = append(records, FavoriteRecord{
		ID:        uuid.NewString(),
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	})
	return f.write(ctx, userID, records)
}

// Remove un-favorites a product. Absent records are a no-op.
func (f *Favorites) Remove(ctx context.Context, userID, productID string) error {
	records := f.List(ctx, userID)
	kept := records[:0]
	removed := false
	for _, rec := range records {
		if rec.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return nil
	}
	return f.write(ctx, userID, kept)
}

// IsFavorite reports whether the user has favorited the product.
func (f *Favorites) IsFavorite(ctx context.Context, userID, productID string) bool {
	for _, rec := range f.List(ctx, userID) {
		if rec.ProductID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) write(ctx context.Context, userID string, records []FavoriteRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return &StorefrontError{Op: "favorites.write", Kind: "favorites", ID: userID, Err: err}
	}
	if err := f.store.Set(ctx, favoritesKey(userID), string(payload), 0); err != nil {
		return &StorefrontError{Op: "favorites.write", Kind: "favorites", ID: userID, Err: err}
	}
	return nil
}
