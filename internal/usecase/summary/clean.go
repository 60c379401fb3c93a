package summary

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	specialRe    = regexp.MustCompile(`[^\w\s.,!?;:'-]`)
)

// CleanText prepares raw input for summarization: HTML tags out, whitespace
// collapsed, everything but word characters and basic punctuation dropped.
func CleanText(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
