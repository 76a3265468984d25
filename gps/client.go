package gps

import "github.com/golang/pkgconf/log"

// ClientFlags is a bitfield of resolver behavior toggles.
type ClientFlags uint16

const (
	DefinePrefix ClientFlags = 1 << iota
	DontDefinePrefix
	NoUninstalled
	SkipProvides
	SkipConflicts
	IgnoreConflicts
	SkipErrors
	SkipRootVirtual
	MergePrivateFragments
)

// Has reports whether every bit in want is set in f.
func (f ClientFlags) Has(want ClientFlags) bool { return f&want == want }

// DirList finds and enumerates .pc files across a search path;
// gps/dirlist provides a concrete, filesystem-backed implementation.
type DirList interface {
	// Find returns the absolute path of the .pc file backing name, and
	// whether one was found.
	Find(name string) (path string, ok bool)
	// All returns the absolute paths of every .pc file on the search
	// path, in a stable (sorted) order.
	All() []string
}

// Client is the read-only resolution context passed to every
// component: search paths, global variable overrides, sysroot,
// static-mode flag, and the assorted behavior flags.
type Client interface {
	DirList() DirList
	GlobalVars() map[string]string
	SysrootDir() (string, bool)
	IsStatic() bool
	Flags() ClientFlags
	MaxTraversalDepth() int
	PrefixVariable() string

	// TraceLogger, when it returns non-nil, receives solve-trace output.
	TraceLogger() *log.Logger
}

// StaticClient is a plain Client implementation suitable for direct
// construction in callers and tests, built up by hand before being
// passed to Solve.
type StaticClient struct {
	Dirs          DirList
	Overrides     map[string]string
	Sysroot       string
	HasSysroot    bool
	Static        bool
	F             ClientFlags
	MaxDepth      int
	PrefixVarName string
	Trace         *log.Logger
}

// NewClient returns a StaticClient with the usual defaults: a
// 2048-level traversal cap (generous but finite) and a prefix
// variable name of "prefix", pkg-config's own default.
func NewClient(dirs DirList) *StaticClient {
	return &StaticClient{
		Dirs:          dirs,
		Overrides:     map[string]string{},
		MaxDepth:      2048,
		PrefixVarName: "prefix",
	}
}

func (c *StaticClient) DirList() DirList              { return c.Dirs }
func (c *StaticClient) GlobalVars() map[string]string { return c.Overrides }
func (c *StaticClient) SysrootDir() (string, bool)    { return c.Sysroot, c.HasSysroot }
func (c *StaticClient) IsStatic() bool                { return c.Static }
func (c *StaticClient) Flags() ClientFlags            { return c.F }
func (c *StaticClient) MaxTraversalDepth() int        { return c.MaxDepth }
func (c *StaticClient) PrefixVariable() string {
	if c.PrefixVarName == "" {
		return "prefix"
	}
	return c.PrefixVarName
}
func (c *StaticClient) TraceLogger() *log.Logger { return c.Trace }
