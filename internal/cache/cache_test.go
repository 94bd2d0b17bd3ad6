package cache

import (
	"strings"
	"testing"
	"time"
)

// fakeClock is an adjustable clock for expiry tests
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(ttl, clock.Now), clock
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for key never set")
	}
}

func TestGetWithinTTL(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)

	c.Set("k", "v")
	clock.Advance(5*time.Minute - time.Nanosecond)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit just under the TTL")
	}
	if got != "v" {
		t.Errorf("Get = %v, want v", got)
	}
}

func TestGetAtAndPastTTL(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)

	c.Set("k", "v")
	clock.Advance(5 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss at exactly the TTL")
	}

	clock.Advance(time.Hour)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss past the TTL")
	}
}

func TestSetOverwritesAndRefreshesTimestamp(t *testing.T) {
	c, clock := newTestCache(5 * time.Minute)

	c.Set("k", "old")
	clock.Advance(4 * time.Minute)
	c.Set("k", "new")
	clock.Advance(4 * time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit, overwrite should reset the insertion time")
	}
	if got != "new" {
		t.Errorf("Get = %v, want new", got)
	}
}

func TestInvalidateByPrefix(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("places:alice:a", 1)
	c.Set("places:alice:b", 2)
	c.Set("places:bob:a", 3)

	c.Invalidate(func(key string) bool {
		return strings.HasPrefix(key, "places:alice:")
	})

	if _, ok := c.Get("places:alice:a"); ok {
		t.Error("alice entry a should be invalidated")
	}
	if _, ok := c.Get("places:alice:b"); ok {
		t.Error("alice entry b should be invalidated")
	}
	if _, ok := c.Get("places:bob:a"); !ok {
		t.Error("bob entry should survive")
	}
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
}
