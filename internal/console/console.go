package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"glyphsmith/internal/config"
)

// Session is the encoding state applied for one CLI run.
type Session struct {
	// Writer is where user-facing output must go.
	Writer io.Writer
	// Encoding names the effective output encoding.
	Encoding string

	closer  io.Closer
	restore func() error
	once    sync.Once
	err     error
}

// Apply configures the console for out and returns the session to restore.
// The returned session is always usable; a non-nil error means the preferred
// encoding could not be applied and output is left unchanged.
func Apply(cfg config.Console, out io.Writer) (*Session, error) {
	if out == nil {
		out = os.Stdout
	}
	return apply(cfg, out, os.Getenv)
}

// Restore puts the console back the way Apply found it. Safe to call more
// than once.
func (s *Session) Restore() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		var errs []error
		if s.closer != nil {
			errs = append(errs, s.closer.Close())
		}
		if s.restore != nil {
			errs = append(errs, s.restore())
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}

func passthrough(out io.Writer, name string) *Session {
	return &Session{Writer: out, Encoding: name}
}

// LocaleCharset returns the charset named by the first non-empty locale
// variable (LC_ALL, LC_CTYPE, LANG), or "" when none names one.
func LocaleCharset(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := strings.TrimSpace(getenv(key))
		if value == "" {
			continue
		}
		// language_TERRITORY.charset@modifier
		if at := strings.IndexByte(value, '@'); at >= 0 {
			value = value[:at]
		}
		if dot := strings.IndexByte(value, '.'); dot >= 0 {
			return value[dot+1:]
		}
		return ""
	}
	return ""
}

// IsUTF8 reports whether charset names UTF-8.
func IsUTF8(charset string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(charset, "-", ""))
	return normalized == "utf8"
}

// Lookup resolves an IANA charset name to an encoding.
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// NewWriter returns a writer that transcodes UTF-8 text to enc. Characters
// enc cannot represent are replaced rather than failing the write. Close
// flushes any buffered partial character.
func NewWriter(out io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(out, encoding.ReplaceUnsupported(enc.NewEncoder()))
}
