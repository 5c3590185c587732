package session

import (
	"runtime"
	"testing"
)

func TestCleanInput(t *testing.T) {
	tests := map[string]string{
		`  /fonts/a.ttf  `:         "/fonts/a.ttf",
		`"/fonts/My Font.ttf"`:     "/fonts/My Font.ttf",
		`'/fonts/Tom & Jerry.ttf'`: "/fonts/Tom & Jerry.ttf",
		`"unbalanced.ttf'`:         `"unbalanced.ttf'`,
		`"`:                        `"`,
		``:                         ``,
	}
	for in, want := range tests {
		if got := CleanInput(in); got != want {
			t.Fatalf("CleanInput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanInputUnescapesDroppedPaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on Windows")
	}
	if got := CleanInput(`/fonts/My\ Font\ \(Bold\).ttf`); got != "/fonts/My Font (Bold).ttf" {
		t.Fatalf("unexpected unescape result %q", got)
	}
}

func TestIsExitKeyword(t *testing.T) {
	for _, in := range []string{"exit", "EXIT", " Quit "} {
		if !IsExitKeyword(in) {
			t.Fatalf("expected %q to exit", in)
		}
	}
	for _, in := range []string{"", "exit.ttf", "q"} {
		if IsExitKeyword(in) {
			t.Fatalf("did not expect %q to exit", in)
		}
	}
}
