package cache

import "testing"

func TestKeyIsStable(t *testing.T) {
	t.Parallel()

	cache, err := New(nil)
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}
	defer cache.Close()

	first := cache.Key("shortest", "a", "b")
	second := cache.Key("shortest", "a", "b")
	if first != second {
		t.Fatalf("the same operation and contacts must hash identically: %d != %d", first, second)
	}

	if cache.Key("reach:3", "a", "b") == first {
		t.Fatal("different operations must produce different keys")
	}
	if cache.Key("shortest", "b", "a") == first {
		t.Fatal("contact order is part of the key")
	}
}

func TestInvalidateContactChangesKeys(t *testing.T) {
	t.Parallel()

	cache, err := New(nil)
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}
	defer cache.Close()

	before := cache.Key("shortest", "a", "b")
	unrelated := cache.Key("shortest", "c", "d")

	cache.InvalidateContact("a")

	if cache.Key("shortest", "a", "b") == before {
		t.Fatal("invalidation must change every key scoped to the contact")
	}
	if cache.Key("shortest", "c", "d") != unrelated {
		t.Fatal("invalidation must not touch keys of other contacts")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	t.Parallel()

	var cache *Cache

	if _, ok := cache.Get(1); ok {
		t.Fatal("nil cache must never report a hit")
	}
	cache.Set(1, "value")
	cache.InvalidateContact("a")
	cache.Close()
}
