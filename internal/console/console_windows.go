//go:build windows

package console

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/windows"

	"glyphsmith/internal/config"
)

// apply switches the console input and output code pages, trying the
// preferred page first and the fallback second. The original pages are
// restored by Session.Restore.
func apply(cfg config.Console, out io.Writer, _ func(string) string) (*Session, error) {
	if cfg.CodePage == 0 && cfg.FallbackCodePage == 0 {
		return passthrough(out, "console default"), nil
	}

	origOut, outErr := windows.GetConsoleOutputCP()
	origIn, inErr := windows.GetConsoleCP()
	if outErr != nil || inErr != nil {
		// Not attached to a console (redirected output).
		return passthrough(out, "console default"), nil
	}

	var failures []error
	for _, cp := range []int{cfg.CodePage, cfg.FallbackCodePage} {
		if cp <= 0 {
			continue
		}
		if err := setCodePages(uint32(cp)); err != nil {
			failures = append(failures, fmt.Errorf("code page %d: %w", cp, err))
			continue
		}
		session := passthrough(out, fmt.Sprintf("CP%d", cp))
		session.restore = func() error {
			return errors.Join(windows.SetConsoleOutputCP(origOut), windows.SetConsoleCP(origIn))
		}
		return session, nil
	}
	return passthrough(out, fmt.Sprintf("CP%d", origOut)), errors.Join(failures...)
}

func setCodePages(cp uint32) error {
	if err := windows.SetConsoleOutputCP(cp); err != nil {
		return err
	}
	return windows.SetConsoleCP(cp)
}
