package gemini

import (
	"errors"
	"strings"
)

// ExtractJSON returns the first JSON object or array in model output,
// stripping markdown fences and surrounding prose.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```json"); i != -1 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j != -1 {
			text = text[:j]
		}
	} else if i := strings.Index(text, "```"); i != -1 {
		text = text[i+3:]
		if j := strings.Index(text, "```"); j != -1 {
			text = text[:j]
		}
	}
	text = strings.TrimSpace(text)

	objStart, objEnd := strings.Index(text, "{"), strings.LastIndex(text, "}")
	arrStart, arrEnd := strings.Index(text, "["), strings.LastIndex(text, "]")

	if arrStart != -1 && arrEnd > arrStart && (objStart == -1 || arrStart < objStart) {
		return text[arrStart : arrEnd+1], nil
	}
	if objStart == -1 || objEnd <= objStart {
		return "", errors.New("cannot find valid JSON in response")
	}
	return text[objStart : objEnd+1], nil
}
