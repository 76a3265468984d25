package gps

import (
	"strings"

	"github.com/golang/pkgconf/gps/compare"
)

// PackageFlags is a bitfield of the boolean state attached to every
// Package.
type PackageFlags uint16

const (
	FlagVirtual PackageFlags = 1 << iota
	FlagUninstalled
	FlagPrefixRedefined
	FlagVisited
	FlagAncestor
	FlagProvidesVerified
	FlagStatic
	FlagCached
)

func (f PackageFlags) has(want PackageFlags) bool { return f&want != 0 }

// Package is the resolved record: identity, metadata, fragment lists,
// dependency edges, resolved variables, and bit-flag state. Apply keeps
// its visited set local to each call (see traverse.go) and neither reads
// nor writes the Serial/Depth fields.
type Package struct {
	ID        string
	Filename  string // empty for virtual packages
	PcFileDir string

	Realname    string
	Version     string
	Description string
	URL         string
	License     string
	Maintainer  string
	Copyright   string
	Source      string
	LicenseFile string

	Libs          FragmentList
	LibsPrivate   FragmentList
	Cflags        FragmentList
	CflagsPrivate FragmentList

	Requires        DependencyList
	RequiresPrivate DependencyList
	Conflicts       DependencyList
	Provides        DependencyList

	Vars map[string]string

	Flags PackageFlags

	// Serial/Depth are traversal scratch fields; no traversal in
	// traverse.go sets them.
	Serial int
	Depth  int
}

// IsVirtual reports whether the package has no backing .pc file.
func (p *Package) IsVirtual() bool { return p.Flags.has(FlagVirtual) }

// String renders "id version", or bare "id" when the version is
// empty, matching the Rust prototype's Display impl.
func (p *Package) String() string {
	if p.Version == "" {
		return p.ID
	}
	return p.ID + " " + p.Version
}

// DisplayName returns the Name: field if present, else the lookup id.
func (p *Package) DisplayName() string {
	if p.Realname != "" {
		return p.Realname
	}
	return p.ID
}

// SatisfiesName reports whether this package can stand in for a
// dependency on name: either its own id matches, or one of its
// Provides entries does.
func (p *Package) SatisfiesName(name string) bool {
	if p.ID == name {
		return true
	}
	for _, prov := range p.Provides.Entries() {
		if prov.Package == name {
			return true
		}
	}
	return false
}

// VerifyDependency applies dep's version constraint to this package,
// using the matching Provides entry's own version if dep names a
// provided alias, else the package's own version. Returns false if
// the package does not satisfy dep's name at all.
func (p *Package) VerifyDependency(dep Dependency) bool {
	if p.ID == dep.Package {
		return dep.VersionSatisfiedBy(p.Version)
	}
	for _, prov := range p.Provides.Entries() {
		if prov.Package != dep.Package {
			continue
		}
		version := prov.Version
		if version == "" {
			version = p.Version
		}
		return dep.VersionSatisfiedBy(version)
	}
	return false
}

// AddSelfProvides prepends a (id, =, version) entry to Provides so
// the package satisfies its own name through the provides path.
// Idempotent.
func (p *Package) AddSelfProvides() {
	if p.Flags.has(FlagProvidesVerified) {
		return
	}
	self := WithVersion(p.ID, compare.Equal, p.Version)
	p.Provides.Prepend(self)
	p.Flags |= FlagProvidesVerified
}

// loadPackage turns a parsed .pc file plus a client into a fully
// resolved Package.
func loadPackage(c Client, pc *PcFile, id string) (*Package, Error) {
	p := &Package{
		ID:        id,
		Filename:  pc.Path,
		PcFileDir: pc.Dir,
	}

	// Step 1: uninstalled variant detection.
	stem := baseNameNoExt(pc.Path)
	if strings.HasSuffix(stem, "-uninstalled") {
		p.Flags |= FlagUninstalled
	}

	definePrefix := c.Flags().Has(DefinePrefix) || !c.Flags().Has(DontDefinePrefix)
	dontDefinePrefix := c.Flags().Has(DontDefinePrefix)
	sysroot, hasSysroot := c.SysrootDir()

	vars, verr := resolveVars(id, pc.Vars, c.GlobalVars(), pc.Path, pc.Dir, sysroot, hasSysroot, definePrefix, dontDefinePrefix, c.PrefixVariable())
	if verr != nil {
		return nil, verr
	}
	p.Vars = vars
	if _, overridden := c.GlobalVars()[c.PrefixVariable()]; !overridden && definePrefix && !dontDefinePrefix {
		if _, ok := computePrefixFromPcDir(pc.Dir); ok {
			p.Flags |= FlagPrefixRedefined
		}
	}

	// Step 3: per-field second expansion pass, then parse.
	expand := func(raw string) string {
		s := raw
		for pass := 0; pass < maxExpansionPasses; pass++ {
			next, did := expandOnce(s, vars)
			if !did {
				break
			}
			s = next
		}
		return s
	}

	if raw, ok := pc.Get("Libs"); ok {
		p.Libs = ParseFragmentList(expand(raw))
	}
	if raw, ok := pc.Get("Libs.private"); ok {
		p.LibsPrivate = ParseFragmentList(expand(raw))
	}
	if raw, ok := pc.Get("Cflags"); ok {
		p.Cflags = ParseFragmentList(expand(raw))
	}
	if raw, ok := pc.Get("Cflags.private"); ok {
		p.CflagsPrivate = ParseFragmentList(expand(raw))
	}
	if raw, ok := pc.Get("Requires"); ok {
		p.Requires = ParseDependencyList(expand(raw))
	}
	if raw, ok := pc.Get("Requires.private"); ok {
		p.RequiresPrivate = ParseDependencyList(expand(raw))
	}
	if raw, ok := pc.Get("Conflicts"); ok {
		p.Conflicts = ParseDependencyList(expand(raw))
	}
	if raw, ok := pc.Get("Provides"); ok {
		p.Provides = ParseDependencyList(expand(raw))
	}

	// Step 4: scalar metadata.
	if raw, ok := pc.Get("Name"); ok {
		p.Realname = expand(raw)
	}
	if raw, ok := pc.Get("Version"); ok {
		p.Version = expand(raw)
	}
	if raw, ok := pc.Get("Description"); ok {
		p.Description = expand(raw)
	}
	if raw, ok := pc.Get("URL"); ok {
		p.URL = expand(raw)
	}
	if raw, ok := pc.Get("License"); ok {
		p.License = expand(raw)
	}
	if raw, ok := pc.Get("Maintainer"); ok {
		p.Maintainer = expand(raw)
	}
	if raw, ok := pc.Get("Copyright"); ok {
		p.Copyright = expand(raw)
	}
	if raw, ok := pc.Get("Source"); ok {
		p.Source = expand(raw)
	}
	if raw, ok := pc.Get("LicenseFile"); ok {
		p.LicenseFile = expand(raw)
	}

	if c.IsStatic() {
		p.Flags |= FlagStatic
	}

	return p, nil
}

// newVirtual synthesizes a virtual package (no backing file), e.g. a
// builtin or the world root.
func newVirtual(id, version string) *Package {
	return &Package{
		ID:      id,
		Version: version,
		Vars:    map[string]string{},
		Flags:   FlagVirtual,
	}
}

// worldPackage synthesizes the virtual:world root package whose
// Requires list holds the top-level queries.
func worldPackage(queries DependencyList) *Package {
	w := newVirtual("virtual:world", "0")
	w.Requires = queries
	return w
}

// builtinPkgConfig and builtinPkgconf are the virtual packages the
// cache is seeded with on construction, carrying the search-path and
// system-directory variables pkgconf exposes via
// pkgconf_pkg_new_from_builtin.
func builtinPkgConfig(c Client) *Package {
	p := newVirtual("pkg-config", "1.0")
	p.Vars = builtinVars(c)
	return p
}

func builtinPkgconf(c Client) *Package {
	p := newVirtual("pkgconf", "1.0")
	p.Vars = builtinVars(c)
	// pkgconf additionally claims compatibility with pkg-config.
	p.Provides.Push(NewDependency("pkg-config"))
	return p
}

func builtinVars(c Client) map[string]string {
	paths := make([]string, 0)
	for _, path := range c.DirList().All() {
		paths = append(paths, dirOf(path))
	}
	return map[string]string{
		"pc_path":               strings.Join(dedupeStrings(paths), ":"),
		"pc_system_libdirs":     "/usr/lib:/usr/lib64",
		"pc_system_includedirs": "/usr/include",
	}
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func baseNameNoExt(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".pc")
	return base
}
