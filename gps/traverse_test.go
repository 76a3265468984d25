package gps

import (
	"strings"
	"testing"
)

func TestCollectModversions(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "zlib", "Name: zlib\nVersion: 1.2.13\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("zlib")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	mv := CollectModversions(cache, world)
	if len(mv) != 1 || mv[0].Name != "zlib" || mv[0].Version != "1.2.13" {
		t.Errorf("unexpected modversions: %+v", mv)
	}
}

func TestSolutionListsEveryNonVirtualNode(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "simple", "Name: simple\nVersion: 1.0\n")
	writePC(t, dir, "depender", "Name: depender\nVersion: 2.0\nRequires: simple\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("depender")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	sol := Solution(cache, client, world)
	names := map[string]string{}
	for _, mv := range sol {
		names[mv.Name] = mv.Version
	}
	if names["simple"] != "1.0" || names["depender"] != "2.0" {
		t.Errorf("unexpected solution: %+v", sol)
	}
}

func TestHasUninstalled(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo-uninstalled", "Name: foo\nVersion: 1.0\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("foo-uninstalled")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !HasUninstalled(cache, client, world) {
		t.Error("expected HasUninstalled to report true")
	}
}

func TestDigraphIsParseableAndMatchesVisitedSet(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "simple", "Name: simple\nVersion: 1.0\n")
	writePC(t, dir, "depender", "Name: depender\nVersion: 1.0\nRequires: simple\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("depender")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	out := Digraph(cache, client, world, false)
	if !strings.HasPrefix(out, "digraph pkgconf {") {
		t.Fatalf("expected a graphviz digraph header, got %q", out)
	}
	if !strings.Contains(out, `"depender" -> "simple"`) {
		t.Errorf("expected an edge from depender to simple, got %q", out)
	}
	if !strings.Contains(out, `"simple"`) || !strings.Contains(out, `"depender"`) {
		t.Errorf("expected both node names present, got %q", out)
	}
}

func TestCollectLibsStaticMergesPrivate(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "privdep", "Name: privdep\nVersion: 1.0\nLibs: -lpriv\n")
	writePC(t, dir, "main", "Name: main\nVersion: 1.0\nRequires.private: privdep\nLibs: -lmain\nLibs.private: -lmainpriv\n")

	client := testClient(t, dir)
	client.Static = true
	cache := NewCache(client)
	q := NewQueue()
	q.Push("main")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	libs := CollectLibs(cache, client, world)
	for _, want := range []string{"-lmain", "-lmainpriv", "-lpriv"} {
		if !containsFragment(libs, want) {
			t.Errorf("expected %s in static-mode libs, got %q", want, libs.Render(" "))
		}
	}

	// Dynamic mode leaves private fragments and private edges alone.
	client2 := testClient(t, dir)
	cache2 := NewCache(client2)
	q2 := NewQueue()
	q2.Push("main")
	world2, err := Solve(cache2, client2, q2)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	libs2 := CollectLibs(cache2, client2, world2)
	if containsFragment(libs2, "-lmainpriv") || containsFragment(libs2, "-lpriv") {
		t.Errorf("expected no private fragments in dynamic mode, got %q", libs2.Render(" "))
	}
}

func TestApplySkipRootVirtual(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "simple", "Name: simple\nVersion: 1.0\n")

	client := testClient(t, dir)
	client.F |= SkipRootVirtual
	cache := NewCache(client)
	q := NewQueue()
	q.Push("simple")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	var visited []string
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		visited = append(visited, pkg.ID)
		return true
	})
	if len(visited) != 1 || visited[0] != "simple" {
		t.Errorf("expected only simple to be visited (root virtual skipped), got %v", visited)
	}
}

func TestApplyPrunesOnFalse(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "leaf", "Name: leaf\nVersion: 1.0\n")
	writePC(t, dir, "mid", "Name: mid\nVersion: 1.0\nRequires: leaf\n")

	client := testClient(t, dir)
	cache := NewCache(client)
	q := NewQueue()
	q.Push("mid")
	world, err := Solve(cache, client, q)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	var visited []string
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		visited = append(visited, pkg.ID)
		return pkg.ID != "mid"
	})
	for _, id := range visited {
		if id == "leaf" {
			t.Errorf("expected leaf to be pruned once mid returns false, got %v", visited)
		}
	}
}
