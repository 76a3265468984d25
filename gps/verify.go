package gps

// verifyGraph is the verify phase: a depth-first walk from world,
// under an immutable cache borrow, checking Conflicts (unless
// suppressed) and resolving every Requires (and, in static mode,
// Requires.private) edge. Errors are accumulated rather than
// short-circuited.
func verifyGraph(cache *Cache, client Client, world *Package) Error {
	visited := make(map[string]bool)
	var errs []Error

	checkConflicts := !client.Flags().Has(SkipConflicts) && !client.Flags().Has(IgnoreConflicts)

	var visit func(pkg *Package)
	var visitDeps func(deps DependencyList)

	visit = func(pkg *Package) {
		if visited[pkg.ID] {
			return
		}
		visited[pkg.ID] = true

		if checkConflicts {
			for _, c := range pkg.Conflicts.Entries() {
				target := resolvePackage(cache, c.Package)
				if target == nil {
					continue
				}
				if c.VersionSatisfiedBy(target.Version) {
					errs = append(errs, &PackageConflictError{Name: pkg.ID, ConflictsWith: target.ID})
				}
			}
		}

		visitDeps(pkg.Requires)
		if client.IsStatic() {
			visitDeps(pkg.RequiresPrivate)
		}
	}

	visitDeps = func(deps DependencyList) {
		for _, dep := range deps.Entries() {
			target := resolvePackage(cache, dep.Package)
			if target == nil {
				if !client.Flags().Has(SkipErrors) {
					errs = append(errs, &PackageNotFoundError{Name: dep.Package})
				}
				continue
			}
			visit(target)
		}
	}

	visit(world)
	return accumulate(errs)
}

// resolvePackage looks up name in cache by id, falling back to a
// provides-based match; shared by verify and traversal.
func resolvePackage(cache *Cache, name string) *Package {
	if pkg, ok := cache.Lookup(name); ok {
		return pkg
	}
	if pkg, ok := cache.LookupProvider(name); ok {
		return pkg
	}
	return nil
}
