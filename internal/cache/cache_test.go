package cache

import (
	"testing"
	"time"
)

func TestKey_DistinguishesModels(t *testing.T) {
	a := Key("text-embedding-3-small", "hello world")
	b := Key("text-embedding-3-large", "hello world")

	if a == b {
		t.Error("Expected different keys for different models")
	}
	if a != Key("text-embedding-3-small", "hello world") {
		t.Error("Expected stable keys for identical inputs")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(val) != "v" {
		t.Errorf("Expected 'v', got '%s'", val)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected cache miss for unknown key")
	}
}

func TestDiskCache_SetGetExpiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set("k", []byte("persisted"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "persisted" {
		t.Errorf("Expected disk hit with 'persisted', got found=%v val=%s", found, val)
	}

	// Expired entries are misses and get removed
	if err := c.Set("old", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("old"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	// Write through both layers, then drop memory to force a disk hit.
	if err := c.Set("k", []byte("layered"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	c.memory.Clear()

	val, found := c.Get("k")
	if !found || string(val) != "layered" {
		t.Fatalf("Expected disk hit, got found=%v val=%s", found, val)
	}

	// Promotion means the next read hits memory.
	if _, found := c.memory.Get("k"); !found {
		t.Error("Expected disk hit to be promoted to memory")
	}
}

func TestLayeredCache_DeleteRemovesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}
