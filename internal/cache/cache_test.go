package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Minute)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("Get(a) = %d, %v; want 1, true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Fatal("missing key must not be found")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, string]()

	c.Set("k", "v", time.Nanosecond)
	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestCacheZeroTTLIsNoop(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("k", 1, 0)
	if _, ok := c.Get("k"); ok {
		t.Fatal("zero ttl must not store")
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewTTLCache[int, string]()

	c.Set(1, "x", time.Minute)
	c.Delete(1)
	if _, ok := c.Get(1); ok {
		t.Fatal("deleted entry must not be returned")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Minute)
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("Get(k) = %d, want 2", got)
	}
}
