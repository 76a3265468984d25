package gps

import (
	"strings"

	"github.com/golang/pkgconf/gps/compare"
)

// Dependency is a single entry from a Requires, Requires.private,
// Conflicts, or Provides field: a package name with an optional
// comparator and version.
type Dependency struct {
	Package string
	Compare compare.Op
	Version string // empty unless Compare != compare.Any
}

// NewDependency builds an unconstrained dependency (matches any version).
func NewDependency(pkg string) Dependency {
	return Dependency{Package: pkg, Compare: compare.Any}
}

// WithVersion builds a version-constrained dependency.
func WithVersion(pkg string, op compare.Op, version string) Dependency {
	return Dependency{Package: pkg, Compare: op, Version: version}
}

// String renders the dependency the way it would appear in a field value.
func (d Dependency) String() string {
	if d.Compare == compare.Any {
		return d.Package
	}
	return d.Package + " " + d.Compare.String() + " " + d.Version
}

// VersionSatisfiedBy reports whether the given found version satisfies
// this dependency's constraint.
func (d Dependency) VersionSatisfiedBy(found string) bool {
	return compare.Eval(found, d.Compare, d.Version)
}

// DependencyList is an ordered sequence of dependencies, preserving
// declaration order.
type DependencyList struct {
	entries []Dependency
}

// NewDependencyList returns an empty list.
func NewDependencyList() DependencyList {
	return DependencyList{}
}

// Push appends a dependency.
func (l *DependencyList) Push(d Dependency) {
	l.entries = append(l.entries, d)
}

// Prepend inserts a dependency at the front of the list.
func (l *DependencyList) Prepend(d Dependency) {
	l.entries = append([]Dependency{d}, l.entries...)
}

// Len reports the number of entries.
func (l DependencyList) Len() int { return len(l.entries) }

// IsEmpty reports whether the list has no entries.
func (l DependencyList) IsEmpty() bool { return len(l.entries) == 0 }

// Entries returns the underlying slice; callers must not mutate it.
func (l DependencyList) Entries() []Dependency { return l.entries }

// Clone returns an independent copy, safe to recurse on across a
// mutable-cache borrow boundary.
func (l DependencyList) Clone() DependencyList {
	cp := make([]Dependency, len(l.entries))
	copy(cp, l.entries)
	return DependencyList{entries: cp}
}

// ParseDependencyList parses a Requires/Conflicts/Provides raw field
// value. Items are separated by commas or whitespace; each item is
// `name [op version]`. Version tokens may contain dots, digits,
// letters, hyphens, underscores, plus signs, and tildes.
func ParseDependencyList(raw string) DependencyList {
	var list DependencyList
	toks := tokenizeDependencyField(raw)

	for i := 0; i < len(toks); i++ {
		name := toks[i]
		if name == "" {
			continue
		}
		if _, ok := compare.ParseOp(name); ok {
			// A stray comparator with no preceding name; ignore it.
			continue
		}

		dep := NewDependency(name)
		if i+1 < len(toks) {
			if op, ok := compare.ParseOp(toks[i+1]); ok && i+2 < len(toks) {
				dep = WithVersion(name, op, toks[i+2])
				i += 2
			}
		}
		list.Push(dep)
	}
	return list
}

// tokenizeDependencyField splits a dependency field into whitespace-
// and-comma-delimited tokens, splitting a comparator operator away from
// any name or version it is glued to (handles "foo >= 1.0", "foo>=1.0"
// and "foo >=1.0" shaped input).
func tokenizeDependencyField(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", " ")
	fields := strings.Fields(raw)

	var out []string
	for _, f := range fields {
		// Split a glued comparator+name/version, e.g. ">=1.0" or "foo>=1.0".
		idx := strings.IndexAny(f, "=!<>")
		if idx < 0 {
			out = append(out, f)
			continue
		}
		name := f[:idx]
		rest := f[idx:]
		opLen := 1
		if len(rest) > 1 && (rest[1] == '=') {
			opLen = 2
		}
		op := rest[:opLen]
		version := rest[opLen:]
		if name != "" {
			out = append(out, name)
		}
		out = append(out, op)
		if version != "" {
			out = append(out, version)
		}
	}
	return out
}

// FragmentKind discriminates the kind of flag a Fragment represents.
type FragmentKind uint8

const (
	FragmentOther FragmentKind = iota
	FragmentIncludePath
	FragmentLibPath
	FragmentLibName
	FragmentDefine
)

// Fragment is a single parsed compiler or linker flag.
type Fragment struct {
	Kind  FragmentKind
	Value string
}

// String renders the fragment as it would appear on a command line.
func (f Fragment) String() string { return f.Value }

func classifyFragment(tok string) FragmentKind {
	switch {
	case strings.HasPrefix(tok, "-I"):
		return FragmentIncludePath
	case strings.HasPrefix(tok, "-L"):
		return FragmentLibPath
	case strings.HasPrefix(tok, "-l"):
		return FragmentLibName
	case strings.HasPrefix(tok, "-D"):
		return FragmentDefine
	default:
		return FragmentOther
	}
}

// FragmentList is an ordered sequence of fragments.
type FragmentList struct {
	entries []Fragment
}

// NewFragmentList returns an empty list.
func NewFragmentList() FragmentList { return FragmentList{} }

// Len reports the number of fragments.
func (l FragmentList) Len() int { return len(l.entries) }

// IsEmpty reports whether the list has no fragments.
func (l FragmentList) IsEmpty() bool { return len(l.entries) == 0 }

// Entries returns the underlying slice; callers must not mutate it.
func (l FragmentList) Entries() []Fragment { return l.entries }

// Append adds every fragment of other to the end of l, in order.
func (l *FragmentList) Append(other FragmentList) {
	l.entries = append(l.entries, other.entries...)
}

// Push appends a single fragment.
func (l *FragmentList) Push(f Fragment) {
	l.entries = append(l.entries, f)
}

// ParseFragmentList tokenizes a Libs/Cflags raw field value on
// whitespace into classified Fragments. Rendering, filtering, and
// deduplication are downstream concerns; this exists so the module is
// runnable end to end.
func ParseFragmentList(raw string) FragmentList {
	var list FragmentList
	for _, tok := range strings.Fields(raw) {
		list.Push(Fragment{Kind: classifyFragment(tok), Value: tok})
	}
	return list
}

// Render joins the fragments with sep, in order, performing no
// deduplication or filtering.
func (l FragmentList) Render(sep string) string {
	parts := make([]string, len(l.entries))
	for i, f := range l.entries {
		parts[i] = f.Value
	}
	return strings.Join(parts, sep)
}

// Deduplicate returns a copy with duplicate fragment values removed,
// keeping the first occurrence.
func (l FragmentList) Deduplicate() FragmentList {
	seen := make(map[string]bool, len(l.entries))
	var out FragmentList
	for _, f := range l.entries {
		if seen[f.Value] {
			continue
		}
		seen[f.Value] = true
		out.Push(f)
	}
	return out
}
