package domain

import "strings"

// Suggestion is a ranked file completion for an editor prompt.
type Suggestion struct {
	// Path is the normalised relative path.
	Path string `json:"path"`

	// Score is at least 1; higher ranks first.
	Score int `json:"score"`

	// Value is the text inserted into the prompt, e.g. @src/main.go.
	Value string `json:"value"`

	Label       string `json:"label"`
	Description string `json:"description"`
}

// NormalizePath converts a path to forward slashes and strips a leading "./"
// and a trailing "/".
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	path = strings.TrimPrefix(path, "./")
	return strings.TrimSuffix(path, "/")
}

// CompletionValue builds the prompt token for path. Paths are quoted when the
// prefix was quoted or the path contains a space.
func CompletionValue(path string, quoted bool) string {
	if !quoted && !strings.Contains(path, " ") {
		return "@" + path
	}
	return `@"` + path + `"`
}

// ParseCompletionValue extracts the normalised path from a prompt token such
// as @src/main.go or @"my docs/a.md".
func ParseCompletionValue(value string) string {
	path := strings.TrimPrefix(value, "@")
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		path = path[1 : len(path)-1]
	}
	return NormalizePath(path)
}
