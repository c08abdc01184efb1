// Package extract recognizes architectural facts in raw source text. It is
// deliberately heuristic: a small ordered set of regex matchers over the
// file contents, not a grammar parser. Cheap, build-free, and tolerant of
// partial or invalid code, at the cost of precision.
package extract

import (
	"regexp"
	"strings"

	"archview/internal/model"
)

// capture is the structured result of a successful match.
type capture struct {
	value string // submatch payload, empty for marker-only matchers
}

// matcher scans raw text and returns an optional capture.
type matcher func(text string) (capture, bool)

// kindMatcher pairs a matcher with the component kind it recognizes and a
// label builder. Matchers are tried in order; the first hit wins.
type kindMatcher struct {
	kind  model.Kind
	match matcher
	label func(name string, c capture) string
}

// reMatcher builds a matcher from a regexp. With a capture group the first
// submatch becomes the capture value; without one a bare hit suffices.
func reMatcher(re *regexp.Regexp) matcher {
	return func(text string) (capture, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return capture{}, false
		}
		if len(m) > 1 {
			return capture{value: m[1]}, true
		}
		return capture{}, true
	}
}

// substringMatcher matches a literal substring anywhere in the text,
// including comments and strings. Intentionally unscoped.
func substringMatcher(literal string) matcher {
	return func(text string) (capture, bool) {
		if strings.Contains(text, literal) {
			return capture{value: literal}, true
		}
		return capture{}, false
	}
}
