package common

import "strings"

// SplitList splits a comma-separated list, trimming items and dropping empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeList rewrites "a, b,,c" as "a,b,c".
func NormalizeList(s string) string {
	return strings.Join(SplitList(s), ",")
}
