package fetcher

import (
	"path/filepath"
	"testing"
)

func TestCache_GetMiss(t *testing.T) {
	cache, err := OpenMemoryCache()
	if err != nil {
		t.Fatalf("OpenMemoryCache failed: %v", err)
	}
	defer cache.Close()

	_, ok, err := cache.Get("https://github.com/a/b/blob/sha/f.py")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	cache, err := OpenMemoryCache()
	if err != nil {
		t.Fatalf("OpenMemoryCache failed: %v", err)
	}
	defer cache.Close()

	locator := "https://github.com/a/b/blob/sha/f.py#L1-L10"
	if err := cache.Put(locator, "def f():\n    return 1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	code, ok, err := cache.Get(locator)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if code != "def f():\n    return 1" {
		t.Errorf("got %q", code)
	}

	// Overwrite replaces content.
	if err := cache.Put(locator, "updated"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	code, _, _ = cache.Get(locator)
	if code != "updated" {
		t.Errorf("after overwrite: got %q", code)
	}
}

func TestCache_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "snippets.db")

	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	if err := cache.Put("locator", "snippet content"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	cache.Close()

	reopened, err := OpenCache(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	code, ok, err := reopened.Get("locator")
	if err != nil || !ok || code != "snippet content" {
		t.Errorf("persisted read: code=%q ok=%v err=%v", code, ok, err)
	}
}
