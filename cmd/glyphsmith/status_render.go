package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = [...]struct {
	tag   string
	color string
}{
	statusInfo:  {"[INFO]", ansiBlue},
	statusOK:    {"[OK]", ansiGreen},
	statusWarn:  {"[WARN]", ansiYellow},
	statusError: {"[ERROR]", ansiRed},
}

// renderStatus prefixes message with the bracketed tag for kind, coloured
// when colorize is set. Engine stderr is never passed through here.
func renderStatus(kind statusKind, message string, colorize bool) string {
	if kind < statusInfo || int(kind) >= len(statusStyles) {
		kind = statusInfo
	}
	style := statusStyles[kind]
	tag := style.tag
	if colorize {
		tag = style.color + tag + ansiReset
	}
	if message == "" {
		return tag
	}
	return tag + " " + message
}

// shouldColorize reports whether w is an interactive terminal that wants
// colour. NO_COLOR and TERM=dumb turn it off.
func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
