package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogSolvefln(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.LogSolvefln("%s loaded", "zlib")

	got := buf.String()
	if !strings.HasPrefix(got, "solve: ") {
		t.Errorf("expected solve: prefix, got %q", got)
	}
	if !strings.Contains(got, "zlib loaded") {
		t.Errorf("expected formatted message, got %q", got)
	}
}
