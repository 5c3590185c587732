//go:build !windows

package console

import (
	"fmt"
	"io"

	"glyphsmith/internal/config"
)

// apply honours the locale charset. A UTF-8 or unspecified locale needs no
// work; any other charset transcodes output, falling back to the configured
// encoding when the locale names one x/text does not know.
func apply(cfg config.Console, out io.Writer, getenv func(string) string) (*Session, error) {
	charset := LocaleCharset(getenv)
	if charset == "" || IsUTF8(charset) {
		return passthrough(out, "UTF-8"), nil
	}

	enc, err := Lookup(charset)
	name := charset
	if err != nil {
		if cfg.FallbackEncoding == "" {
			return passthrough(out, "UTF-8"), fmt.Errorf("locale charset %s: %w", charset, err)
		}
		fallback, fbErr := Lookup(cfg.FallbackEncoding)
		if fbErr != nil {
			return passthrough(out, "UTF-8"), fmt.Errorf("fallback encoding %s: %w", cfg.FallbackEncoding, fbErr)
		}
		enc, name = fallback, cfg.FallbackEncoding
	}

	w := NewWriter(out, enc)
	return &Session{Writer: w, Encoding: name, closer: w}, nil
}
