package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```(?:jsx|tsx|javascript|js)\\s*\n(.*?)```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\n(.*?)```")
	jsonStartRe = regexp.MustCompile(`\{`)
)

// ExtractCodeBlock pulls component source out of a model reply. It prefers
// the first fenced block tagged as JavaScript/JSX, falls back to any fenced
// block, and finally treats the whole reply as code when no fences exist.
// Returns false when the reply is effectively empty.
func ExtractCodeBlock(text string) (string, bool) {
	if match := codeFenceRe.FindStringSubmatch(text); match != nil {
		code := strings.TrimSpace(match[1])
		return code, code != ""
	}

	if match := anyFenceRe.FindStringSubmatch(text); match != nil {
		code := strings.TrimSpace(match[1])
		return code, code != ""
	}

	code := strings.TrimSpace(text)
	return code, code != ""
}

// ExtractJSON finds the first JSON object in free text and decodes it into
// dest. Models routinely wrap JSON in prose or fences, so this scans for a
// balanced brace pair starting at each "{" until one parses.
func ExtractJSON(text string, dest interface{}) bool {
	for _, loc := range jsonStartRe.FindAllStringIndex(text, -1) {
		candidate, ok := balancedObject(text[loc[0]:])
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), dest); err == nil {
			return true
		}
	}
	return false
}

// balancedObject returns the prefix of s that forms a brace-balanced object,
// respecting string literals and escapes.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}
	return "", false
}
