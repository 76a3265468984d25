package gps

import "fmt"

// Apply performs a depth-first visit: pre-order (callback fires
// before descent), siblings in the declared order of the parent's
// Requires, then Requires.private when private edges are in scope.
// Each package id is visited at most once per call; the visited set is
// local to this call rather than living on Package itself, so no reset
// step is needed between traversals.
//
// Returning false from callback prunes the subtree; true descends.
func Apply(cache *Cache, client Client, world *Package, callback func(pkg *Package, depth int) bool) {
	visited := make(map[string]bool)
	includePrivate := client.IsStatic() || client.Flags().Has(MergePrivateFragments)

	var walk func(pkg *Package, depth int)
	walk = func(pkg *Package, depth int) {
		if visited[pkg.ID] {
			return
		}
		visited[pkg.ID] = true

		descend := true
		if depth == 0 && pkg.IsVirtual() && client.Flags().Has(SkipRootVirtual) {
			// Root handling: callback is skipped but descent proceeds.
		} else {
			descend = callback(pkg, depth)
		}
		if !descend {
			return
		}

		for _, dep := range pkg.Requires.Entries() {
			if child := resolvePackage(cache, dep.Package); child != nil {
				walk(child, depth+1)
			}
		}
		if includePrivate {
			for _, dep := range pkg.RequiresPrivate.Entries() {
				if child := resolvePackage(cache, dep.Package); child != nil {
					walk(child, depth+1)
				}
			}
		}
	}

	walk(world, 0)
}

// CollectCflags appends every non-virtual package's Cflags (and, in
// static/merge-private mode, Cflags.private) fragment list, in
// traversal order. Deduplication is a downstream concern.
func CollectCflags(cache *Cache, client Client, world *Package) FragmentList {
	mergePrivate := client.IsStatic() || client.Flags().Has(MergePrivateFragments)
	var out FragmentList
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		if !pkg.IsVirtual() {
			out.Append(pkg.Cflags)
			if mergePrivate {
				out.Append(pkg.CflagsPrivate)
			}
		}
		return true
	})
	return out
}

// CollectLibs is CollectCflags' counterpart over Libs/Libs.private.
func CollectLibs(cache *Cache, client Client, world *Package) FragmentList {
	mergePrivate := client.IsStatic() || client.Flags().Has(MergePrivateFragments)
	var out FragmentList
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		if !pkg.IsVirtual() {
			out.Append(pkg.Libs)
			if mergePrivate {
				out.Append(pkg.LibsPrivate)
			}
		}
		return true
	})
	return out
}

// ModVersion is a single (name, version) pair as reported by
// CollectModversions and Solution.
type ModVersion struct {
	Name    string
	Version string
}

// CollectModversions iterates the world's direct Requires and emits
// (name, version) pairs in declaration order, resolving each name
// against the cache (by id or provider) for its actual version.
func CollectModversions(cache *Cache, world *Package) []ModVersion {
	out := make([]ModVersion, 0, world.Requires.Len())
	for _, dep := range world.Requires.Entries() {
		version := dep.Version
		if target := resolvePackage(cache, dep.Package); target != nil {
			version = target.Version
		}
		out = append(out, ModVersion{Name: dep.Package, Version: version})
	}
	return out
}

// Solution is like CollectModversions but for every non-virtual node
// in the closure, not just the top-level queries.
func Solution(cache *Cache, client Client, world *Package) []ModVersion {
	var out []ModVersion
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		if !pkg.IsVirtual() {
			out = append(out, ModVersion{Name: pkg.ID, Version: pkg.Version})
		}
		return true
	})
	return out
}

// HasUninstalled is a short-circuit DFS that returns true on the
// first uninstalled package encountered.
func HasUninstalled(cache *Cache, client Client, world *Package) bool {
	found := false
	Apply(cache, client, world, func(pkg *Package, depth int) bool {
		if found {
			return false
		}
		if pkg.Flags.has(FlagUninstalled) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Digraph emits graphviz node and edge lines for the closure reachable
// from world. Private edges render dashed; virtual nodes render
// dotted when queryNodes is set (mirroring pkgconf's
// --dot-format/--query-nodes pairing).
func Digraph(cache *Cache, client Client, world *Package, queryNodes bool) string {
	var b []byte
	b = append(b, "digraph pkgconf {\n"...)

	visited := make(map[string]bool)
	includePrivate := client.IsStatic() || client.Flags().Has(MergePrivateFragments)

	emitNode := func(pkg *Package) {
		if pkg.ID == "virtual:world" {
			return
		}
		style := ""
		if pkg.IsVirtual() && queryNodes {
			style = " [style=dotted]"
		}
		b = append(b, fmt.Sprintf("  %q%s;\n", pkg.ID, style)...)
	}
	emitEdge := func(from, to string, dashed bool) {
		style := ""
		if dashed {
			style = " [style=dashed]"
		}
		b = append(b, fmt.Sprintf("  %q -> %q%s;\n", from, to, style)...)
	}

	var walk func(pkg *Package)
	walk = func(pkg *Package) {
		if visited[pkg.ID] {
			return
		}
		visited[pkg.ID] = true
		emitNode(pkg)

		for _, dep := range pkg.Requires.Entries() {
			emitEdge(pkg.ID, dep.Package, false)
			if child := resolvePackage(cache, dep.Package); child != nil {
				walk(child)
			}
		}
		if includePrivate {
			for _, dep := range pkg.RequiresPrivate.Entries() {
				emitEdge(pkg.ID, dep.Package, true)
				if child := resolvePackage(cache, dep.Package); child != nil {
					walk(child)
				}
			}
		}
	}
	walk(world)

	b = append(b, "}\n"...)
	return string(b)
}
