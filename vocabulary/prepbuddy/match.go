package prepbuddy

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match returns the entries whose value matches a dotted glob pattern.
// A '*' matches within one segment and '**' spans any number of segments:
//
//	org.apache.datacommons.prepbuddy.*   → single-segment children of the root
//	**.python                            → org.apache.spark.api.python
//
// Results keep declaration order. An invalid pattern, including one written
// with '/' instead of dots, returns an error wrapping doublestar.ErrBadPattern.
func Match(pattern string) ([]Entry, error) {
	if strings.Contains(pattern, "/") {
		return nil, fmt.Errorf("match %q: %w", pattern, doublestar.ErrBadPattern)
	}
	glob := toPath(pattern)
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("match %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var out []Entry
	for _, e := range table {
		ok, err := doublestar.Match(glob, toPath(e.Value))
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Under returns the entries equal to namespace or nested below it. Matching
// is segment-aware, so "org.apache.data" does not select
// "org.apache.datacommons".
func Under(namespace string) []Entry {
	namespace = strings.TrimSuffix(namespace, Separator)
	if namespace == "" {
		return Entries()
	}

	var out []Entry
	for _, e := range table {
		if e.Value == namespace || strings.HasPrefix(e.Value, namespace+Separator) {
			out = append(out, e)
		}
	}
	return out
}

// toPath turns dotted segments into slash-separated ones so doublestar's
// segment rules apply.
func toPath(dotted string) string {
	return strings.ReplaceAll(dotted, Separator, "/")
}
