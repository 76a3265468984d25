package gps

import (
	"os"
	"strings"
)

// findPcPath resolves name to an absolute .pc file path, without
// touching the cache. Path-looking names (containing '/' or ending in
// ".pc") load directly from disk, bypassing both DirList and the
// uninstalled-variant check.
func findPcPath(c Client, name string) (string, bool) {
	if strings.ContainsRune(name, '/') || strings.HasSuffix(name, ".pc") {
		path := name
		if !strings.HasSuffix(path, ".pc") {
			path += ".pc"
		}
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		return "", false
	}

	if !c.Flags().Has(NoUninstalled) {
		if path, ok := c.DirList().Find(name + "-uninstalled"); ok {
			return path, true
		}
	}
	return c.DirList().Find(name)
}

// loadFromDisk locates and parses the .pc file backing name, then
// resolves it into a Package via loadPackage. This is the filesystem
// half of finding-or-loading a package; cache insertion is the
// caller's responsibility (see cache.go/solver.go).
func loadFromDisk(c Client, name string) (*Package, Error) {
	path, ok := findPcPath(c, name)
	if !ok {
		return nil, &PackageNotFoundError{Name: name}
	}
	pc, perr := parsePcFile(path)
	if perr != nil {
		return nil, perr
	}
	pkg, lerr := loadPackage(c, pc, name)
	if lerr != nil {
		return nil, lerr
	}
	pkg.AddSelfProvides()
	return pkg, nil
}

// ScanAll loads every .pc file reachable from the client's search
// path into a Package, keyed by lookup id (the file's stem). Used by
// provider search (solver.go) and by list-all style callers.
func ScanAll(c Client) ([]*Package, Error) {
	var out []*Package
	for _, path := range c.DirList().All() {
		id := idFromPath(path)
		pc, perr := parsePcFile(path)
		if perr != nil {
			return nil, perr
		}
		pkg, lerr := loadPackage(c, pc, id)
		if lerr != nil {
			return nil, lerr
		}
		pkg.AddSelfProvides()
		out = append(out, pkg)
	}
	return out, nil
}

func idFromPath(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".pc")
}
