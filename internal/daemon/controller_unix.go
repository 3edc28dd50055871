//go:build unix

package daemon

import (
	"context"
	"fmt"
	"slices"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"
)

// Terminate sends SIGTERM.
func (c *SystemController) Terminate(ctx context.Context, pid int) error {
	p, err := c.open(ctx, pid)
	if err != nil {
		return err
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("send SIGTERM to process %d: %w", pid, err)
	}
	return nil
}

// isZombie reports whether pid has exited but not been reaped. Zombies still
// answer signal 0 and would otherwise look alive.
func isZombie(ctx context.Context, pid int32) bool {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return false
	}
	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(status, process.Zombie)
}

func detachedAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
