package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T, namespace string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisStoreOptions{
		RedisURL:  "redis://" + mr.Addr(),
		Namespace: namespace,
	})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_RequiresURL(t *testing.T) {
	_, err := NewRedisStore(RedisStoreOptions{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewRedisStore() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore(RedisStoreOptions{RedisURL: "not-a-url"})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewRedisStore() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(RedisStoreOptions{RedisURL: "redis://" + addr})
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("NewRedisStore() error = %v, want ErrConnectionFailed", err)
	}
}

func TestRedisStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, "")

	if err := store.Set(ctx, "key", "value", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "value" {
		t.Errorf("Get() = %q, want %q", value, "value")
	}
}

func TestRedisStore_MissingKeyIsNotAnError(t *testing.T) {
	store, _ := newTestRedisStore(t, "")
	value, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "" {
		t.Errorf("Get() = %q, want empty string", value)
	}
}

func TestRedisStore_Namespacing(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, "storefront:deviceA")

	if err := store.Set(ctx, DefaultBasketKey, "[]", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("storefront:deviceA:" + DefaultBasketKey) {
		t.Error("namespaced key missing from Redis")
	}
	if mr.Exists(DefaultBasketKey) {
		t.Error("bare key present in Redis; namespacing not applied")
	}
}

func TestRedisStore_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	storeA, err := NewRedisStore(RedisStoreOptions{RedisURL: "redis://" + mr.Addr(), Namespace: "a"})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer storeA.Close()
	storeB, err := NewRedisStore(RedisStoreOptions{RedisURL: "redis://" + mr.Addr(), Namespace: "b"})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer storeB.Close()

	if err := storeA.Set(ctx, "basket", "from-a", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, err := storeB.Get(ctx, "basket")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "" {
		t.Errorf("store B read %q through store A's namespace", value)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, "")

	if err := store.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	exists, err := store.Exists(ctx, "key")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() after TTL elapsed = true, want false")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, "")

	if err := store.Set(ctx, "key", "value", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, err := store.Exists(ctx, "key")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() after delete = true, want false")
	}
}

func TestRedisStore_HealthCheck(t *testing.T) {
	store, mr := newTestRedisStore(t, "")

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	mr.Close()
	if err := store.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() after server close = nil, want error")
	}
}

func TestRedisStore_JournalOverRedis(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t, "storefront:device1")

	basket := NewBasketStore()
	journal := NewBasketJournal(store, "")
	journal.Attach(ctx, basket)

	basket.Add(sixPack())
	journal.Flush()

	// A second journal over the same store restores the same state, the way a
	// relaunched app would.
	restored := NewBasketJournal(store, "").Restore(ctx)
	line, ok := restored.Find("1")
	if !ok || line.Quantity != 6 {
		t.Errorf("restored line = %+v ok=%v, want quantity 6", line, ok)
	}
}
