package ir

import (
	"regexp"
	"strings"
)

var smartTagPattern = regexp.MustCompile(`@(\w+)(?:\s+([^\n@]+))?`)

// parseSmartTags extracts "@tag value" runs from a catalog comment.
// Comments with no recognizable tags (or no comment at all) yield an empty
// SmartTags rather than an error; the grammar has no notion of a malformed
// tag, only of text that doesn't match it.
func parseSmartTags(comment string) SmartTags {
	tags := SmartTags{}
	if comment == "" {
		return tags
	}
	for _, m := range smartTagPattern.FindAllStringSubmatch(comment, -1) {
		name := m[1]
		value := strings.TrimSpace(m[2])
		tags[name] = append(tags[name], value)
	}
	return tags
}
