package gps

import (
	"testing"

	"github.com/d4l3k/messagediff"
)

// TestSolveDeterministic checks that two independent solves of the
// same query produce identical solutions, using messagediff for a
// structural comparison of the two resolved solutions.
func TestSolveDeterministic(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "d", "Name: d\nVersion: 1.0\nLibs: -lD\n")
	writePC(t, dir, "b", "Name: b\nVersion: 1.0\nRequires: d\nLibs: -lB\n")
	writePC(t, dir, "c", "Name: c\nVersion: 1.0\nRequires: d\nLibs: -lC\n")
	writePC(t, dir, "a", "Name: a\nVersion: 1.0\nRequires: b, c\nLibs: -lA\n")

	run := func() []ModVersion {
		client := testClient(t, dir)
		cache := NewCache(client)
		q := NewQueue()
		q.Push("a")
		world, err := Solve(cache, client, q)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		return Solution(cache, client, world)
	}

	first := run()
	second := run()

	if diff, equal := messagediff.PrettyDiff(first, second); !equal {
		t.Errorf("expected identical solve runs to produce identical solutions, diff:\n%s", diff)
	}
}
