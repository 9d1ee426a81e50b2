package cache

import (
	"testing"
	"time"

	"macrodash/internal/snapshot"
)

func testSnap(label string) snapshot.Snapshot {
	return snapshot.Snapshot{
		TakenAt: time.Now(),
		Rows:    []snapshot.MetricRow{{Label: label, Available: true, Latest: 100}},
	}
}

func TestCache_PutGet(t *testing.T) {
	c := New(time.Minute)
	key := Key{CatalogHash: "abc", StartDate: "2024-01-01"}

	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Put(key, testSnap("Equities"))
	snap, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if snap.Rows[0].Label != "Equities" {
		t.Errorf("unexpected snapshot content: %+v", snap.Rows)
	}
}

func TestCache_KeySeparation(t *testing.T) {
	c := New(time.Minute)
	c.Put(Key{CatalogHash: "abc", StartDate: "2024-01-01"}, testSnap("one"))

	if _, ok := c.Get(Key{CatalogHash: "abc", StartDate: "2023-01-01"}); ok {
		t.Error("different start date must be a different entry")
	}
	if _, ok := c.Get(Key{CatalogHash: "def", StartDate: "2024-01-01"}); ok {
		t.Error("different catalog hash must be a different entry")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := Key{CatalogHash: "abc", StartDate: "2024-01-01"}
	c.Put(key, testSnap("Equities"))

	now = now.Add(9 * time.Minute)
	if _, ok := c.Get(key); !ok {
		t.Fatal("entry should still be fresh")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(key); ok {
		t.Fatal("entry should have expired")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New(time.Minute)
	key := Key{CatalogHash: "abc", StartDate: "2024-01-01"}
	c.Put(key, testSnap("Equities"))
	c.Invalidate(key)
	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestCache_Sweep(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put(Key{CatalogHash: "a", StartDate: "2024-01-01"}, testSnap("a"))
	c.Put(Key{CatalogHash: "b", StartDate: "2024-01-01"}, testSnap("b"))
	now = now.Add(2 * time.Minute)
	c.Put(Key{CatalogHash: "c", StartDate: "2024-01-01"}, testSnap("c"))

	if dropped := c.Sweep(); dropped != 2 {
		t.Fatalf("expected 2 dropped entries, got %d", dropped)
	}
	if _, ok := c.Get(Key{CatalogHash: "c", StartDate: "2024-01-01"}); !ok {
		t.Error("fresh entry must survive the sweep")
	}
}
