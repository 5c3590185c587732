//go:build !windows

package fontforge

import (
	"errors"
	"os/exec"
)

func applyRawCmdLine(*exec.Cmd, string) error {
	return errors.New("cmd shell routing is only available on Windows")
}
