package gps

import (
	"path/filepath"
	"strings"
)

// maxExpansionPasses bounds the iterative ${var} substitution loop;
// exhausting it without converging means a cycle.
const maxExpansionPasses = 64

// resolveVars expands a package's variables: given the .pc file's own
// variable assignments, the client's global overrides, an optional
// sysroot, and the prefix-redefinition option, it produces a fully
// expanded name -> value map.
//
// pcFileDir is the absolute directory containing the .pc file;
// definePrefix/dontDefinePrefix mirror the client flags of the same
// name; prefixVar is the client's configured prefix variable name
// (normally "prefix").
func resolveVars(id string, fileVars []kv, globalOverrides map[string]string, pcFilePath, pcFileDir string, sysroot string, hasSysroot bool, definePrefix, dontDefinePrefix bool, prefixVar string) (map[string]string, Error) {
	vars := make(map[string]string, len(fileVars)+len(globalOverrides)+2)

	// Step 1: start from global overrides.
	for k, v := range globalOverrides {
		vars[k] = v
	}

	// Step 2: prefix redefinition, unless explicitly disabled or
	// already pinned by a global override.
	if definePrefix && !dontDefinePrefix {
		if _, overridden := globalOverrides[prefixVar]; !overridden {
			if prefix, ok := computePrefixFromPcDir(pcFileDir); ok {
				vars[prefixVar] = prefix
			}
		}
	}

	// Step 3: merge the file's own variable assignments; file-local
	// defaults lose to anything already present (overrides, prefix).
	for _, entry := range fileVars {
		if _, exists := vars[entry.name]; exists {
			continue
		}
		vars[entry.name] = entry.value
	}

	// Step 4: pcfiledir is always the file's containing directory.
	vars["pcfiledir"] = pcFileDir
	if hasSysroot {
		vars["pc_sysrootdir"] = sysroot
	}

	// Step 5: iterative expansion.
	if err := expandAll(id, vars); err != nil {
		return nil, err
	}

	// Step 6: sysroot application.
	if hasSysroot {
		applySysroot(vars, sysroot)
	}

	return vars, nil
}

type kv struct {
	name  string
	value string
}

// expandAll substitutes every ${name} reference in every value,
// iterating to a fixed point. Undefined variables expand to the empty
// string, matching common pkg-config behavior.
func expandAll(id string, vars map[string]string) Error {
	for pass := 0; pass < maxExpansionPasses; pass++ {
		changed := false
		for name, value := range vars {
			expanded, did := expandOnce(value, vars)
			if did {
				vars[name] = expanded
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
	return &VariableCycleError{Name: id}
}

// expandOnce performs a single left-to-right substitution pass over
// s, replacing every ${name} with vars[name] (or empty if undefined).
func expandOnce(s string, vars map[string]string) (string, bool) {
	if !strings.Contains(s, "${") {
		return s, false
	}
	var b strings.Builder
	changed := false
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start
		name := s[start+2 : end]
		b.WriteString(s[:start])
		b.WriteString(vars[name])
		changed = true
		s = s[end+1:]
	}
	return b.String(), changed
}

// computePrefixFromPcDir derives the install prefix from a .pc file's
// containing directory, recognizing standard and multiarch layouts.
func computePrefixFromPcDir(pcFileDir string) (string, bool) {
	dir := filepath.Clean(pcFileDir)
	base := filepath.Base(dir)
	if base != "pkgconfig" {
		return "", false
	}
	parent := filepath.Dir(dir)
	grandBase := filepath.Base(parent)

	switch grandBase {
	case "lib", "lib64", "share", "libdata":
		return filepath.Dir(parent), true
	default:
		// Possible multiarch layout: lib/<arch>/pkgconfig.
		grandparent := filepath.Dir(parent)
		ggBase := filepath.Base(grandparent)
		if ggBase == "lib" || ggBase == "lib64" {
			return filepath.Dir(grandparent), true
		}
		// Fall back to the parent of pkgconfig as-is.
		return parent, true
	}
}

// applySysroot prepends sysroot to every absolute-path value not
// already under it. pcfiledir and pc_sysrootdir are exempt.
func applySysroot(vars map[string]string, sysroot string) {
	if sysroot == "" {
		return
	}
	for name, value := range vars {
		if name == "pcfiledir" || name == "pc_sysrootdir" {
			continue
		}
		if !strings.HasPrefix(value, "/") {
			continue
		}
		if strings.HasPrefix(value, sysroot) {
			continue
		}
		vars[name] = sysroot + value
	}
}
