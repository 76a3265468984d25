// Package dirlist provides a concrete, filesystem-backed
// implementation of gps.DirList: given an ordered search path, it
// finds a .pc file by basename and enumerates every .pc file across
// the path.
package dirlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/armon/go-radix"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// List indexes every *.pc file found under a set of search
// directories. Find is backed by a radix tree keyed on basename; All
// returns every discovered path in sorted order so that provider scans
// and digraph/solution output are deterministic.
type List struct {
	dirs  []string
	index *radix.Tree
	all   []string
}

// New walks dirs in order — the first directory to contain a given
// basename wins ties, matching pkg-config's "first search-path hit
// wins" ordering guarantee — and returns a ready List. A directory
// that does not exist is skipped rather than treated as an error,
// matching pkg-config's tolerance of stale PKG_CONFIG_PATH entries.
func New(dirs []string) (*List, error) {
	l := &List{dirs: dirs, index: radix.New()}
	seen := make(map[string]bool)

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		err := godirwalk.Walk(dir, &godirwalk.Options{
			Unsorted: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() || !strings.HasSuffix(path, ".pc") {
					return nil
				}
				base := strings.TrimSuffix(filepath.Base(path), ".pc")
				if _, exists := l.index.Get(base); !exists {
					l.index.Insert(base, path)
				}
				if !seen[path] {
					seen[path] = true
					l.all = append(l.all, path)
				}
				return nil
			},
			ErrorCallback: func(string, error) godirwalk.ErrorAction {
				return godirwalk.SkipNode
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking search directory %s", dir)
		}
	}

	sort.Strings(l.all)
	return l, nil
}

// Find returns the absolute path of the .pc file whose basename is
// name, if one was indexed.
func (l *List) Find(name string) (string, bool) {
	v, ok := l.index.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// All returns every indexed .pc path, sorted.
func (l *List) All() []string {
	out := make([]string, len(l.all))
	copy(out, l.all)
	return out
}

// Dirs returns the search path this List was built from.
func (l *List) Dirs() []string {
	out := make([]string, len(l.dirs))
	copy(out, l.dirs)
	return out
}
