package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("test")

	if _, err := c.Get(ctx, "missing"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("got %q, %v", got, err)
	}

	ok, _ := c.Exists(ctx, "k")
	if !ok {
		t.Fatal("expected key to exist")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("")

	if err := c.Set(ctx, "short", "v", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !IsNotFound(err) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("")

	_ = c.Set(ctx, "a", "1", 0)
	_, _ = c.Get(ctx, "a")
	_, _ = c.Get(ctx, "nope")

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Driver != "memory" || st.Keys != 1 || st.Hits != 1 || st.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestNewDefaultsToMemory(t *testing.T) {
	c, err := New(Config{Driver: ""})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*memoryClient); !ok {
		t.Fatalf("expected memory client, got %T", c)
	}
}
