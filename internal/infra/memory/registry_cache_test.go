package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCachedRegistryCachesListing(t *testing.T) {
	ctx := context.Background()
	backend := &countingRegistry{Registry: NewRegistry()}
	_ = backend.Add(ctx, "quiz-1")
	reg := NewCachedRegistry(backend, time.Minute)

	if ids, err := reg.List(ctx); err != nil || len(ids) != 1 {
		t.Fatalf("list: %v %v", ids, err)
	}
	if backend.lists != 1 {
		t.Fatalf("expected backend once, got %d", backend.lists)
	}

	if n, _ := reg.Count(ctx); n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}
	if ok, _ := reg.Contains(ctx, "quiz-1"); !ok {
		t.Fatalf("expected quiz-1 present")
	}
	if backend.lists != 1 {
		t.Fatalf("expected cache hit, backend lists %d", backend.lists)
	}
}

func TestCachedRegistryAddInvalidates(t *testing.T) {
	ctx := context.Background()
	backend := &countingRegistry{Registry: NewRegistry()}
	reg := NewCachedRegistry(backend, time.Minute)

	_, _ = reg.List(ctx)
	if err := reg.Add(ctx, "quiz-2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, _ := reg.List(ctx)
	if len(ids) != 1 || ids[0] != "quiz-2" {
		t.Fatalf("expected fresh listing, got %v", ids)
	}
	if backend.lists != 2 {
		t.Fatalf("expected reload after add, backend lists %d", backend.lists)
	}
}

func TestCachedRegistryExpires(t *testing.T) {
	ctx := context.Background()
	backend := &countingRegistry{Registry: NewRegistry()}
	reg := NewCachedRegistry(backend, time.Second)
	now := time.Unix(1_000, 0)
	reg.clock = func() time.Time { return now }

	_, _ = reg.List(ctx)
	now = now.Add(2 * time.Second)
	_, _ = reg.List(ctx)
	if backend.lists != 2 {
		t.Fatalf("expected expiry to reload, backend lists %d", backend.lists)
	}
}

func TestCachedRegistryDropsListingLoadedBeforeAdd(t *testing.T) {
	ctx := context.Background()
	backend := &blockingRegistry{
		Registry: NewRegistry(),
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	reg := NewCachedRegistry(backend, time.Minute)

	done := make(chan []string)
	go func() {
		ids, _ := reg.List(ctx)
		done <- ids
	}()
	<-backend.started

	if err := reg.Add(ctx, "quiz-new"); err != nil {
		t.Fatalf("add: %v", err)
	}
	close(backend.release)
	if ids := <-done; len(ids) != 0 {
		t.Fatalf("expected the in-flight listing to predate the add, got %v", ids)
	}

	ids, err := reg.List(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "quiz-new" {
		t.Fatalf("expected quiz-new listed after add, got %v %v", ids, err)
	}
	if ok, _ := reg.Contains(ctx, "quiz-new"); !ok {
		t.Fatalf("expected quiz-new present")
	}
	if n, _ := reg.Count(ctx); n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}
}

// blockingRegistry holds its first List until release is closed, returning
// the snapshot taken before blocking.
type blockingRegistry struct {
	*Registry
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (r *blockingRegistry) List(ctx context.Context) ([]string, error) {
	ids, err := r.Registry.List(ctx)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.started)
		<-r.release
	}
	return ids, err
}

type countingRegistry struct {
	*Registry
	lists int
}

func (r *countingRegistry) List(ctx context.Context) ([]string, error) {
	r.lists++
	return r.Registry.List(ctx)
}
