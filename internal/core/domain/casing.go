package domain

import "strings"

// RewriteKeys returns a copy of a decoded JSON tree with every object key
// passed through rename. Objects and arrays are walked to any depth;
// scalars are returned unchanged.
func RewriteKeys(v any, rename func(string) string) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[rename(key)] = RewriteKeys(child, rename)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = RewriteKeys(child, rename)
		}
		return out
	default:
		return v
	}
}

// SnakeToCamel converts wire field names to host field names.
// Only an underscore followed by a lowercase ASCII letter is folded,
// so "libgit2_version" becomes "libgit2Version" and "_2" is kept.
func SnakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '_' && i+1 < len(key) && isLower(key[i+1]) {
			b.WriteByte(key[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToSnake converts host field names to wire field names.
// It is the inverse of SnakeToCamel for keys without uppercase runs.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isUpper(c) {
			b.WriteByte('_')
			b.WriteByte(c - 'A' + 'a')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
