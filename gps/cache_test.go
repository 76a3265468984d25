package gps

import "testing"

func TestCacheBuiltinsSeeded(t *testing.T) {
	dir := t.TempDir()
	client := testClient(t, dir)
	cache := NewCache(client)

	if !cache.Contains("pkg-config") {
		t.Error("expected builtin pkg-config to be seeded")
	}
	if !cache.Contains("pkgconf") {
		t.Error("expected builtin pkgconf to be seeded")
	}
	pkgconf, _ := cache.Lookup("pkgconf")
	if !pkgconf.SatisfiesName("pkg-config") {
		t.Error("expected pkgconf to provide pkg-config compatibility")
	}
}

func TestCacheAddPanicsOnDuplicate(t *testing.T) {
	dir := t.TempDir()
	client := testClient(t, dir)
	cache := NewCache(client)

	defer func() {
		if recover() == nil {
			t.Error("expected Add to panic on duplicate id")
		}
	}()
	cache.Add(newVirtual("pkg-config", "9.9"))
}

func TestCacheLookupProviderScansInsertionOrder(t *testing.T) {
	dir := t.TempDir()
	client := testClient(t, dir)
	cache := NewCache(client)

	first := newVirtual("first", "1.0")
	first.Provides.Push(NewDependency("alias"))
	second := newVirtual("second", "2.0")
	second.Provides.Push(NewDependency("alias"))
	cache.Add(first)
	cache.Add(second)

	p, ok := cache.LookupProvider("alias")
	if !ok || p.ID != "first" {
		t.Errorf("expected first insertion to win provider lookup, got %v (ok=%v)", p, ok)
	}
}
