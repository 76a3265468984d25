package gps

import "testing"

func TestVerifyGraphSkipErrorsDowngradesMissing(t *testing.T) {
	dir := t.TempDir()
	// "main" is loaded and cached by hand with an extra Requires on
	// "ghost", which has no backing .pc file and is never loaded, so the
	// verify phase meets a dependency missing from the cache (as with a
	// hand-built World/Cache in a test harness).
	writePC(t, dir, "main", "Name: main\nVersion: 1.0\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	main, lerr := loadFromDisk(client, "main")
	if lerr != nil {
		t.Fatalf("loadFromDisk: %v", lerr)
	}
	main.Requires.Push(NewDependency("ghost"))
	cache.Add(main)

	world := worldPackage(DependencyList{})
	world.Requires.Push(NewDependency("main"))

	if err := verifyGraph(cache, client, world); err == nil {
		t.Fatal("expected PackageNotFoundError for ghost dependency")
	}

	client2 := testClient(t, dir)
	client2.F |= SkipErrors
	cache2 := NewCache(client2)
	main2, _ := loadFromDisk(client2, "main")
	main2.Requires.Push(NewDependency("ghost"))
	cache2.Add(main2)
	world2 := worldPackage(DependencyList{})
	world2.Requires.Push(NewDependency("main"))

	if err := verifyGraph(cache2, client2, world2); err != nil {
		t.Errorf("expected SkipErrors to suppress missing-package error, got %v", err)
	}
}

func TestApplyVisitsEachIdOnce(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "d", "Name: d\nVersion: 1.0\n")
	writePC(t, dir, "b", "Name: b\nVersion: 1.0\nRequires: d\n")
	writePC(t, dir, "c", "Name: c\nVersion: 1.0\nRequires: d\n")
	writePC(t, dir, "a", "Name: a\nVersion: 1.0\nRequires: b, c\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("a")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	visits := map[string]int{}
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		visits[pkg.ID]++
		return true
	})
	if visits["d"] != 1 {
		t.Errorf("expected d visited exactly once, got %d", visits["d"])
	}
}
