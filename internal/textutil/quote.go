package textutil

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Dialect names a command interpreter whose quoting rules apply.
type Dialect string

const (
	DialectSh  Dialect = "sh"
	DialectCmd Dialect = "cmd"
)

// QuoteArg renders value as a single literal argument for the dialect.
// Spaces, ampersands, parentheses and every other metacharacter survive
// unchanged once the interpreter has parsed the result.
func QuoteArg(dialect Dialect, value string) string {
	switch dialect {
	case DialectCmd:
		return quoteCmd(value)
	default:
		return quoteSh(value)
	}
}

// JoinArgs quotes each argument and joins them with single spaces.
func JoinArgs(dialect Dialect, args ...string) string {
	if dialect != DialectCmd {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = quoteSh(arg)
		}
		return strings.Join(parts, " ")
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = quoteCmd(arg)
	}
	return strings.Join(parts, " ")
}

// SplitArgs parses a POSIX command line back into its arguments.
func SplitArgs(line string) ([]string, error) {
	return shellquote.Split(line)
}

func quoteSh(value string) string {
	if value == "" {
		return "''"
	}
	return shellquote.Join(value)
}

// quoteCmd wraps value in double quotes, inside which cmd.exe treats
// & ( ) ^ | < > literally. Percent signs still expand inside quotes, so each
// one is emitted outside the quotes with a caret escape. A run of
// backslashes before any quote the result contains is doubled, as the C
// runtime argument parser requires.
func quoteCmd(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	slashes := 0
	for _, r := range value {
		switch r {
		case '\\':
			slashes++
			b.WriteByte('\\')
			continue
		case '%':
			b.WriteString(strings.Repeat(`\`, slashes))
			b.WriteString(`"^%"`)
		case '"':
			// Not valid in Windows paths; escape for the C runtime parser.
			b.WriteString(strings.Repeat(`\`, slashes+1))
			b.WriteByte('"')
		default:
			b.WriteRune(r)
		}
		slashes = 0
	}
	b.WriteString(strings.Repeat(`\`, slashes))
	b.WriteByte('"')
	return b.String()
}
