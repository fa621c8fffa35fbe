package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bigboy/appconfig/internal/storagekeys"
)

func TestMemoryStorageSetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStorage(storagekeys.Default())

	if _, err := store.Get(ctx, storagekeys.AccessToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := store.Set(ctx, storagekeys.AccessToken, "abc"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := store.Get(ctx, storagekeys.AccessToken)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}

	if err := store.Set(ctx, storagekeys.AccessToken, "def"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got, _ := store.Get(ctx, storagekeys.AccessToken); got != "def" {
		t.Fatalf("expected overwrite, got %s", got)
	}

	if err := store.Delete(ctx, storagekeys.AccessToken); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(ctx, storagekeys.AccessToken); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, storagekeys.AccessToken); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStorageRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStorage(storagekeys.Default())
	unknown := storagekeys.Key("refresh_token")

	if err := store.Set(ctx, unknown, "x"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey from Set, got %v", err)
	}
	if _, err := store.Get(ctx, unknown); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey from Get, got %v", err)
	}
	if err := store.Delete(ctx, unknown); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey from Delete, got %v", err)
	}
}

func TestMemoryStorageClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStorage(storagekeys.Default())
	for _, k := range storagekeys.Default().All() {
		if err := store.Set(ctx, k, string(k)); err != nil {
			t.Fatalf("Set(%s) returned error: %v", k, err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	for _, k := range storagekeys.Default().All() {
		if _, err := store.Get(ctx, k); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected %s to be cleared, got %v", k, err)
		}
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage(storagekeys.Default())
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			if err := store.Set(ctx, storagekeys.GuestToken, fmt.Sprintf("guest-%d", offset)); err != nil {
				t.Errorf("Set failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			if _, err := store.Get(ctx, storagekeys.GuestToken); err != nil && !errors.Is(err, ErrNotFound) {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}

	wg.Wait()

	if _, err := store.Get(ctx, storagekeys.GuestToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
