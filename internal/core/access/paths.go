package access

import "strings"

// PathSet describes the routes reachable without signing in.
//
// Exact entries must equal the request path. Prefix entries match any path
// that starts with them. Parameterized entries end in one dynamic segment
// (for example "/password-reset/confirm/" for "/password-reset/confirm/<token>/"):
// the trailing segment is stripped from the request path before comparing.
type PathSet struct {
	Exact         []string
	Prefixes      []string
	Parameterized []string
}

// Contains reports whether path is public. Comparison is case-sensitive.
func (s PathSet) Contains(path string) bool {
	for _, e := range s.Exact {
		if path == e {
			return true
		}
	}
	if hasAnyPrefix(path, s.Prefixes) {
		return true
	}
	if base, ok := stripDynamicSegment(path); ok {
		for _, p := range s.Parameterized {
			if base == p {
				return true
			}
		}
	}
	return false
}

// stripDynamicSegment turns "/a/b/<seg>/" into "/a/b/". It reports false
// when the path has no non-empty trailing segment.
func stripDynamicSegment(path string) (string, bool) {
	trimmed := strings.TrimSuffix(path, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 || i == len(trimmed)-1 {
		return "", false
	}
	return trimmed[:i+1], true
}
