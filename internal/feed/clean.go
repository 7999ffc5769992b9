package feed

import (
	"html"
	"regexp"
)

var tagRE = regexp.MustCompile(`(?i)<[^>]+>`)

// CleanDescription decodes HTML entities and then removes every tag
func CleanDescription(s string) string {
	return tagRE.ReplaceAllString(html.UnescapeString(s), "")
}
