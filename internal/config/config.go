// Package config loads the optional pkgconf.toml client configuration
// file: search paths, global variable overrides, sysroot, static
// mode, and traversal depth.
package config

import (
	"io/ioutil"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/golang/pkgconf/gps"
	"github.com/golang/pkgconf/gps/dirlist"
	"github.com/golang/pkgconf/log"
)

// Config is the on-disk shape of pkgconf.toml.
type Config struct {
	SearchPaths     []string          `toml:"search_paths"`
	Variables       map[string]string `toml:"variables"`
	Sysroot         string            `toml:"sysroot"`
	Static          bool              `toml:"static"`
	MaxDepth        int               `toml:"max_depth"`
	PrefixVariable  string            `toml:"prefix_variable"`
	SkipProvides    bool              `toml:"skip_provides"`
	SkipConflicts   bool              `toml:"skip_conflicts"`
	IgnoreConflicts bool              `toml:"ignore_conflicts"`
}

// Load reads and parses the TOML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := &Config{Variables: map[string]string{}, MaxDepth: 2048, PrefixVariable: "prefix"}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// NewClient builds a ready-to-use gps.StaticClient and backing
// dirlist.List from this configuration, wiring the ambient logging
// concern (log.Logger) in as the solve-trace sink when trace is
// non-nil.
func NewClient(cfg *Config, trace *log.Logger) (*gps.StaticClient, error) {
	dirs, err := dirlist.New(cfg.SearchPaths)
	if err != nil {
		return nil, errors.Wrap(err, "building search path index")
	}

	client := gps.NewClient(dirs)
	for k, v := range cfg.Variables {
		client.Overrides[k] = v
	}
	if cfg.Sysroot != "" {
		client.Sysroot = cfg.Sysroot
		client.HasSysroot = true
	}
	client.Static = cfg.Static
	if cfg.MaxDepth > 0 {
		client.MaxDepth = cfg.MaxDepth
	}
	if cfg.PrefixVariable != "" {
		client.PrefixVarName = cfg.PrefixVariable
	}
	if cfg.SkipProvides {
		client.F |= gps.SkipProvides
	}
	if cfg.SkipConflicts {
		client.F |= gps.SkipConflicts
	}
	if cfg.IgnoreConflicts {
		client.F |= gps.IgnoreConflicts
	}
	client.Trace = trace

	return client, nil
}
