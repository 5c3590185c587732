//go:build windows

package fontforge

import (
	"os/exec"
	"syscall"
)

func applyRawCmdLine(cmd *exec.Cmd, line string) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
	return nil
}
