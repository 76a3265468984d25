package gps

// Cache is a content-addressed, insert-once store of loaded packages.
// It is mutably owned during the load phase and lent out immutably
// during verify/traversal — callers must not interleave Add calls
// with a live range over Entries().
type Cache struct {
	byID map[string]*Package
	// order preserves insertion order, needed for deterministic
	// provider search and digraph/solution output.
	order []string
}

// NewCache returns a cache seeded with the pkg-config/pkgconf
// builtins.
func NewCache(c Client) *Cache {
	cache := &Cache{byID: make(map[string]*Package)}
	cache.Add(builtinPkgConfig(c))
	cache.Add(builtinPkgconf(c))
	return cache
}

// Contains reports whether id is already cached.
func (c *Cache) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Lookup returns the cached package for id, by id only (no provides
// scan).
func (c *Cache) Lookup(id string) (*Package, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// LookupProvider scans cached packages (in insertion order) for one
// whose Provides entries or own id satisfies name. This only searches
// what is already cached; solver.go's loadPackageForDep does the
// filesystem-wide provider scan.
func (c *Cache) LookupProvider(name string) (*Package, bool) {
	for _, id := range c.order {
		p := c.byID[id]
		if p.SatisfiesName(name) {
			return p, true
		}
	}
	return nil, false
}

// Add inserts package p under its id. Overwriting an existing id is a
// programmer error (once inserted under an id, a package is never
// replaced); it panics rather than silently corrupting the resolved
// graph.
func (c *Cache) Add(p *Package) {
	if _, exists := c.byID[p.ID]; exists {
		panic("gps: cache already contains package " + p.ID)
	}
	p.Flags |= FlagCached
	c.byID[p.ID] = p
	c.order = append(c.order, p.ID)
}

// Entries returns every cached package in insertion order. Callers
// must treat the result as read-only.
func (c *Cache) Entries() []*Package {
	out := make([]*Package, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out
}
