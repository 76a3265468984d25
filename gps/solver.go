package gps

// Queue is an ordered builder of raw top-level query strings (e.g.
// "zlib >= 1.2"). It compiles into the world package's Requires list.
type Queue struct {
	raw []string
}

// NewQueue returns an empty query builder.
func NewQueue() *Queue { return &Queue{} }

// Push appends a raw query, in the same grammar as a Requires field
// entry: "name", or "name op version".
func (q *Queue) Push(raw string) { q.raw = append(q.raw, raw) }

// compile parses every pushed query into a single DependencyList,
// preserving push order.
func (q *Queue) compile() DependencyList {
	return ParseDependencyList(joinQueries(q.raw))
}

func joinQueries(raw []string) string {
	out := ""
	for i, r := range raw {
		if i > 0 {
			out += ", "
		}
		out += r
	}
	return out
}

// Validate checks that every top-level query resolves to a cached or
// loadable package satisfying its version constraint, without
// recursing into transitive Requires — a cheap existence/version
// check distinct from a full Solve. The cache is consulted but never
// mutated: a Solve on the same cache afterwards still loads every
// subtree itself, so the cache-hit-terminates-descent rule stays
// sound.
func (q *Queue) Validate(cache *Cache, client Client) Error {
	for _, dep := range q.compile().Entries() {
		pkg := resolvePackage(cache, dep.Package)
		if pkg == nil {
			loaded, lerr := loadFromDisk(client, dep.Package)
			if lerr != nil {
				if _, notFound := lerr.(*PackageNotFoundError); !notFound || client.Flags().Has(SkipProvides) {
					return lerr
				}
				scanned, serr := ScanAll(client)
				if serr != nil {
					return serr
				}
				for _, p := range scanned {
					if p.SatisfiesName(dep.Package) {
						loaded = p
						break
					}
				}
				if loaded == nil {
					return &PackageNotFoundError{Name: dep.Package}
				}
			}
			pkg = loaded
		}
		if err := checkVersion(pkg, dep); err != nil {
			return err
		}
	}
	return nil
}

// Solve is the resolver's entry point: compile queries into a world
// package, recursively load and cache the transitive closure, verify
// the graph, and return the world for downstream traversal.
func Solve(cache *Cache, client Client, queries *Queue) (*Package, Error) {
	world := worldPackage(queries.compile())

	if err := resolveDeps(cache, client, world.ID, world.Requires, 0, client.MaxTraversalDepth()); err != nil {
		logSolve(client, "load failed: %s", err.Error())
		return nil, err
	}
	if err := verifyGraph(cache, client, world); err != nil {
		logSolve(client, "verify failed: %s", err.Error())
		return nil, err
	}
	return world, nil
}

// Exists is shorthand for Solve(...).is_ok(): any error, including one
// the caller would otherwise want to inspect, collapses to false.
func Exists(cache *Cache, client Client, queries *Queue) bool {
	_, err := Solve(cache, client, queries)
	return err == nil
}

// resolveDeps is the load phase's recursive closure routine: fail fast
// once depth exceeds the client's limit, otherwise resolve every
// dependency in declaration order.
func resolveDeps(cache *Cache, client Client, parentName string, deps DependencyList, depth, maxDepth int) Error {
	if depth > maxDepth {
		return &MaxDepthExceededError{Name: parentName, Depth: depth}
	}
	for _, dep := range deps.Entries() {
		if err := resolveOne(cache, client, dep, depth, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// resolveOne resolves a single dependency: a cache hit (direct or via
// a provider) only needs a version check, since the cache hit implies
// its subtree is already loaded — this is how cycles terminate. A
// miss loads the package (possibly via provider scan), caches it, and
// recurses into its own Requires (and, in static mode, its
// Requires.private).
func resolveOne(cache *Cache, client Client, dep Dependency, depth, maxDepth int) Error {
	if pkg, ok := cache.Lookup(dep.Package); ok {
		logSolve(client, "%s: already cached, skipping descent", dep.Package)
		return checkVersion(pkg, dep)
	}
	if pkg, ok := cache.LookupProvider(dep.Package); ok {
		logSolve(client, "%s: satisfied by provider %s, skipping descent", dep.Package, pkg.ID)
		return checkVersion(pkg, dep)
	}

	pkg, alreadyCached, lerr := loadPackageForDep(cache, client, dep.Package)
	if lerr != nil {
		return lerr
	}
	if !alreadyCached {
		cache.Add(pkg)
	}
	logSolve(client, "%s: loaded %s", dep.Package, pkg.Filename)

	if err := checkVersion(pkg, dep); err != nil {
		return err
	}

	reqs := pkg.Requires.Clone()
	if err := resolveDeps(cache, client, pkg.ID, reqs, depth+1, maxDepth); err != nil {
		return err
	}
	if client.IsStatic() {
		priv := pkg.RequiresPrivate.Clone()
		if err := resolveDeps(cache, client, pkg.ID, priv, depth+1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// checkVersion applies dep's version constraint against pkg, using
// VerifyDependency's provides-aware comparison.
func checkVersion(pkg *Package, dep Dependency) Error {
	if !pkg.VerifyDependency(dep) {
		return &VersionMismatchError{
			Name:       dep.Package,
			Found:      pkg.Version,
			Required:   dep.Version,
			Comparator: dep.Compare.String(),
		}
	}
	return nil
}

// loadPackageForDep tries a direct filesystem load first; on
// PackageNotFound (and only when skip_provides is unset) it falls back
// to scanning every .pc file on the search path for a Provides match.
// Every scanned package is cached as it is discovered (so later
// lookups are O(1)) even when it is not the one that satisfies name;
// the first match wins.
//
// The returned bool reports whether the package has already been
// inserted into cache by this call (true for the provider-scan path).
func loadPackageForDep(cache *Cache, client Client, name string) (*Package, bool, Error) {
	pkg, lerr := loadFromDisk(client, name)
	if lerr == nil {
		return pkg, false, nil
	}
	if _, ok := lerr.(*PackageNotFoundError); !ok {
		return nil, false, lerr
	}
	if client.Flags().Has(SkipProvides) {
		return nil, false, lerr
	}

	scanned, serr := ScanAll(client)
	if serr != nil {
		return nil, false, serr
	}

	var found *Package
	for _, p := range scanned {
		if cache.Contains(p.ID) {
			continue
		}
		cache.Add(p)
		if found == nil && p.SatisfiesName(name) {
			found = p
		}
	}
	if found != nil {
		return found, true, nil
	}
	return nil, false, &PackageNotFoundError{Name: name}
}

func logSolve(client Client, format string, args ...interface{}) {
	if l := client.TraceLogger(); l != nil {
		l.LogSolvefln(format, args...)
	}
}
