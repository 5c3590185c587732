//go:build !unix

package preflight

import "os"

// Without access(2) the only reliable check is writing a file.
func checkAccess(path string) error {
	tmp, err := os.CreateTemp(path, ".glyphsmith-writecheck-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	_ = tmp.Close()
	return os.Remove(name)
}
