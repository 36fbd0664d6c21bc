package testsupport

import (
	"context"
	"testing"

	"sentrim/internal/config"
	"sentrim/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Enqueue creates a new pending item for tests using the provided store.
func Enqueue(t testing.TB, store *queue.Store, base, sourcePath, diarizedPath string) *queue.Item {
	t.Helper()

	item, err := store.Enqueue(context.Background(), base, sourcePath, diarizedPath)
	if err != nil {
		t.Fatalf("store.Enqueue: %v", err)
	}
	return item
}
