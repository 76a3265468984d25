package gps

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// field is a single recognized keyword record from a .pc file, in
// file order.
type field struct {
	Keyword string
	Raw     string
}

// PcFile is the parsed form of a .pc file: an ordered list of keyword
// fields plus an ordered list of variable assignments, along with the
// file's own location.
type PcFile struct {
	Path   string
	Dir    string
	Fields []field
	Vars   []kv
}

var recognizedKeywords = map[string]bool{
	"Name": true, "Version": true, "Description": true, "URL": true,
	"License": true, "Maintainer": true, "Copyright": true, "Source": true,
	"LicenseFile": true,
	"Libs":        true, "Libs.private": true, "Cflags": true, "Cflags.private": true,
	"Requires": true, "Requires.private": true, "Conflicts": true, "Provides": true,
}

// parsePcFile reads and tokenizes a .pc file. Lines are "Keyword:
// value" for fields or "name=value" for variable assignments; '#'
// starts a comment; a trailing backslash continues the line.
func parsePcFile(path string) (*PcFile, Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Detail: err.Error()}
	}
	defer f.Close()

	pc := &PcFile{
		Path: path,
		Dir:  dirOf(path),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending string
	for scanner.Scan() {
		line := scanner.Text()
		if pending != "" {
			line = pending + line
			pending = ""
		}
		if strings.HasSuffix(line, "\\") {
			pending = strings.TrimSuffix(line, "\\")
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if idx := strings.Index(trimmed, "="); idx > 0 && !isFieldLine(trimmed) {
			name := strings.TrimSpace(trimmed[:idx])
			value := strings.TrimSpace(trimmed[idx+1:])
			pc.Vars = append(pc.Vars, kv{name: name, value: value})
			continue
		}

		if idx := strings.Index(trimmed, ":"); idx > 0 {
			keyword := strings.TrimSpace(trimmed[:idx])
			if recognizedKeywords[keyword] {
				value := strings.TrimSpace(trimmed[idx+1:])
				pc.Fields = append(pc.Fields, field{Keyword: keyword, Raw: value})
				continue
			}
		}
		// Unrecognized line: ignored, matching real pkg-config's
		// tolerance of unknown keywords.
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{File: path, Detail: errors.Wrap(err, "scan failed").Error()}
	}

	return pc, nil
}

// isFieldLine distinguishes "Keyword: value" from "name=value" when a
// line contains both an '=' and a ':' — the field colon must appear
// first in a well-formed .pc file.
func isFieldLine(s string) bool {
	colon := strings.Index(s, ":")
	eq := strings.Index(s, "=")
	if colon < 0 {
		return false
	}
	if eq < 0 {
		return true
	}
	return colon < eq
}

// Get returns the raw text of the first occurrence of keyword, if any.
func (pc *PcFile) Get(keyword string) (string, bool) {
	for _, f := range pc.Fields {
		if f.Keyword == keyword {
			return f.Raw, true
		}
	}
	return "", false
}

func dirOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "."
	}
	return path[:idx]
}
