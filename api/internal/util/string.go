package util

import (
	"strings"
	"unicode/utf8"
)

const fence = "```"

// StripCodeFences removes a markdown code fence wrapped around a model reply.
// The opening line (fence plus optional language tag) is dropped together with
// everything from the last closing fence onward. Text that does not start with a
// fence is returned trimmed and otherwise untouched.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		// single line: ```{"a":1}``` or ```json {"a":1}```
		s = strings.TrimPrefix(s, fence)
		s = strings.TrimPrefix(s, "json")
	}
	if i := strings.LastIndex(s, fence); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most n bytes and marks the cut with an ellipsis.
// The cut backs off to a rune boundary so the result stays valid UTF-8.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
