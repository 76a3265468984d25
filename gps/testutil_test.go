package gps

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// memDirList is a minimal, sorted DirList backed by a single directory
// of .pc files (subdirectories are not scanned), used so
// solver/verify/traverse tests don't need the gps/dirlist package.
type memDirList struct {
	dir  string
	byID map[string]string
	all  []string
}

func newMemDirList(t *testing.T, dir string) *memDirList {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading fixture dir: %v", err)
	}
	l := &memDirList{dir: dir, byID: map[string]string{}}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pc") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		id := strings.TrimSuffix(e.Name(), ".pc")
		l.byID[id] = path
		l.all = append(l.all, path)
	}
	sort.Strings(l.all)
	return l
}

func (l *memDirList) Find(name string) (string, bool) {
	p, ok := l.byID[name]
	return p, ok
}

func (l *memDirList) All() []string {
	out := make([]string, len(l.all))
	copy(out, l.all)
	return out
}

// writePC writes name.pc (name may already include a directory
// component) under dir with the given body.
func writePC(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name+".pc")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// testClient returns a StaticClient rooted at dir's .pc files, with
// sane defaults (no sysroot, dynamic linking, a generous depth cap).
func testClient(t *testing.T, dir string) *StaticClient {
	t.Helper()
	return NewClient(newMemDirList(t, dir))
}
