package llm

import (
	"regexp"
	"strings"
)

var jsonFencePattern = regexp.MustCompile("(?s)```json(.*?)```")

// ExtractLastJSONBlock returns the trimmed body of the last ```json fenced
// block in text, or text unchanged when there is none
func ExtractLastJSONBlock(text string) string {
	matches := jsonFencePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return text
	}
	return strings.TrimSpace(matches[len(matches)-1][1])
}
