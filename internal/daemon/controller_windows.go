//go:build windows

package daemon

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

// Terminate asks pid to close with taskkill (without /F). Console processes
// that refuse are reported as an error.
func (c *SystemController) Terminate(ctx context.Context, pid int) error {
	if _, ok := toPID32(pid); !ok {
		return fmt.Errorf("invalid pid %d", pid)
	}
	cmd := exec.CommandContext(ctx, "taskkill", "/PID", strconv.Itoa(pid))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("taskkill /PID %d: %w: %s", pid, err, out)
	}
	return nil
}

// Windows has no zombie state visible to gopsutil.
func isZombie(context.Context, int32) bool {
	return false
}

func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}
}
