package session

import (
	"runtime"
	"strings"

	"glyphsmith/internal/textutil"
)

var exitKeywords = []string{"exit", "quit"}

// IsExitKeyword reports whether input asks to leave the loop.
func IsExitKeyword(input string) bool {
	input = strings.TrimSpace(input)
	for _, keyword := range exitKeywords {
		if strings.EqualFold(input, keyword) {
			return true
		}
	}
	return false
}

// CleanInput normalizes a typed or dragged-in path. Surrounding whitespace
// and one pair of matching quotes are removed. On POSIX systems an unquoted
// path with backslash-escaped spaces, as some terminals produce on drop, is
// unescaped.
func CleanInput(input string) string {
	input = strings.TrimSpace(input)
	if len(input) >= 2 {
		first, last := input[0], input[len(input)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(input[1 : len(input)-1])
		}
	}
	if runtime.GOOS != "windows" && strings.Contains(input, `\ `) {
		if words, err := textutil.SplitArgs(input); err == nil && len(words) == 1 {
			return words[0]
		}
	}
	return input
}
