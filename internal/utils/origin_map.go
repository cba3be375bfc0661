package utils

import "strings"

// OriginAllowList answers whether a browser Origin may call the API.
// Entries are compared after trimming whitespace and a trailing slash.
type OriginAllowList struct {
	origins []string
	index   map[string]struct{}
}

func NewOriginAllowList(origins []string) *OriginAllowList {
	l := &OriginAllowList{index: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		n := normalizeOrigin(o)
		if n == "" {
			continue
		}
		if _, dup := l.index[n]; dup {
			continue
		}
		l.index[n] = struct{}{}
		l.origins = append(l.origins, n)
	}
	return l
}

// Allows reports whether origin is listed. An empty origin is never listed.
func (l *OriginAllowList) Allows(origin string) bool {
	n := normalizeOrigin(origin)
	if n == "" {
		return false
	}
	_, ok := l.index[n]
	return ok
}

// Origins returns the normalized entries in configuration order.
func (l *OriginAllowList) Origins() []string {
	return append([]string(nil), l.origins...)
}

func (l *OriginAllowList) Len() int {
	return len(l.origins)
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}
