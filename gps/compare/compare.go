// Package compare implements pkg-config's version comparison algorithm.
//
// .pc file version strings are not semver: they're arbitrary
// dot/hyphen/underscore-delimited runs of digits and letters (e.g.
// "1.2.13", "2.3.1-rc1", "1.0_beta"), so this is hand-rolled here,
// grounded on the well-known rpmvercmp family of algorithms that
// pkgconf itself uses.
package compare

import "strings"

// Op is a version comparator operator.
type Op uint8

const (
	Any Op = iota
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

// String renders the operator the way it appears in a Requires/Conflicts line.
func (o Op) String() string {
	switch o {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	default:
		return "any"
	}
}

// ParseOp recognizes the comparator tokens accepted in a dependency grammar.
func ParseOp(s string) (Op, bool) {
	switch s {
	case "=":
		return Equal, true
	case "!=":
		return NotEqual, true
	case "<":
		return Less, true
	case "<=":
		return LessEqual, true
	case ">":
		return Greater, true
	case ">=":
		return GreaterEqual, true
	default:
		return Any, false
	}
}

// Eval reports whether found op required holds. Any always matches.
// An empty found version compares as less than any concrete version.
func Eval(found string, op Op, required string) bool {
	if op == Any {
		return true
	}
	c := Compare(found, required)
	switch op {
	case Equal:
		return c == 0
	case NotEqual:
		return c != 0
	case Less:
		return c < 0
	case LessEqual:
		return c <= 0
	case Greater:
		return c > 0
	case GreaterEqual:
		return c >= 0
	default:
		return false
	}
}

// Compare returns -1, 0, or 1 as a compares less than, equal to, or
// greater than b, using pkg-config's segment-wise algorithm: the
// string is split into alternating runs of digits and non-digits,
// corresponding segments are compared (numeric segments numerically,
// alphabetic segments lexically, and a numeric segment always outranks
// an alphabetic one), and a leading '~' sorts before anything,
// including the end of the string.
//
// An empty string is defined to compare less than any non-empty
// string, per the "empty version" invariant.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	for len(a) > 0 || len(b) > 0 {
		// Tildes sort before everything, even the end of string.
		for len(a) > 0 && a[0] == '~' || len(b) > 0 && b[0] == '~' {
			aTilde := len(a) > 0 && a[0] == '~'
			bTilde := len(b) > 0 && b[0] == '~'
			if !aTilde {
				return 1
			}
			if !bTilde {
				return -1
			}
			a, b = a[1:], b[1:]
		}

		if len(a) == 0 || len(b) == 0 {
			break
		}

		// Skip non-alphanumeric separator runs on both sides.
		a = strings.TrimLeftFunc(a, isSeparator)
		b = strings.TrimLeftFunc(b, isSeparator)

		segA, restA := nextSegment(a)
		segB, restB := nextSegment(b)

		if segA == "" && segB == "" {
			break
		}
		if segA == "" {
			return -1
		}
		if segB == "" {
			return 1
		}

		numA := isDigits(segA)
		numB := isDigits(segB)

		switch {
		case numA && !numB:
			return 1
		case !numA && numB:
			return -1
		case numA && numB:
			if c := compareNumeric(segA, segB); c != 0 {
				return c
			}
		default:
			if c := strings.Compare(segA, segB); c != 0 {
				if c < 0 {
					return -1
				}
				return 1
			}
		}

		a, b = restA, restB
	}

	switch {
	case len(a) == len(b):
		return 0
	case len(a) > len(b):
		return 1
	default:
		return -1
	}
}

func isSeparator(r rune) bool {
	return !isDigitRune(r) && !isLetterRune(r)
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }
func isLetterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigits(s string) bool {
	for _, r := range s {
		if !isDigitRune(r) {
			return false
		}
	}
	return len(s) > 0
}

// nextSegment consumes a maximal run of digits or a maximal run of
// letters from the front of s, whichever the first rune belongs to.
func nextSegment(s string) (segment, rest string) {
	if s == "" {
		return "", ""
	}
	if isDigitRune(rune(s[0])) {
		i := 0
		for i < len(s) && isDigitRune(rune(s[i])) {
			i++
		}
		return s[:i], s[i:]
	}
	if isLetterRune(rune(s[0])) {
		i := 0
		for i < len(s) && isLetterRune(rune(s[i])) {
			i++
		}
		return s[:i], s[i:]
	}
	return "", s
}

// compareNumeric compares two digit-only strings as arbitrary-precision
// integers, ignoring leading zeros.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
