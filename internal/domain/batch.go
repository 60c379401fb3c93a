package domain

import "strings"

// CleanComments strips whitespace, drops empty entries, and removes duplicates
// while preserving first-seen order. Runs before any pipeline stage so the
// core only ever sees a deduplicated, non-empty batch.
func CleanComments(comments []string) []string {
	seen := make(map[string]struct{}, len(comments))
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
