package daemon

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v4/process"
)

// Controller is the set of OS process capabilities the manager needs.
// Implementations own every platform difference; the manager never branches
// on the OS.
type Controller interface {
	// Alive reports whether pid is a live process.
	Alive(ctx context.Context, pid int) bool
	// Terminate requests a graceful exit.
	Terminate(ctx context.Context, pid int) error
	// Kill forces the process to exit.
	Kill(ctx context.Context, pid int) error
	// FindByName returns the first live process whose executable is name.
	FindByName(ctx context.Context, name string) (int, bool)
	// SpawnDetached starts path in the background with no standard streams
	// attached and does not wait for it.
	SpawnDetached(path string) error
}

// SystemController controls real OS processes through gopsutil.
type SystemController struct {
	self int
}

// NewSystemController returns a controller for the host OS.
func NewSystemController() *SystemController {
	return &SystemController{self: os.Getpid()}
}

// toPID32 narrows pid to gopsutil's PID type. PIDs that do not fit cannot
// name a process.
func toPID32(pid int) (int32, bool) {
	if pid <= 0 || pid > math.MaxInt32 {
		return 0, false
	}
	return int32(pid), true
}

// Alive reports whether pid exists and, where the OS reports it, is not a zombie.
func (c *SystemController) Alive(ctx context.Context, pid int) bool {
	p32, ok := toPID32(pid)
	if !ok {
		return false
	}

	exists, err := process.PidExistsWithContext(ctx, p32)
	if err != nil || !exists {
		return false
	}

	return !isZombie(ctx, p32)
}

// Kill forces pid to exit (SIGKILL, or TerminateProcess on windows).
func (c *SystemController) Kill(ctx context.Context, pid int) error {
	p, err := c.open(ctx, pid)
	if err != nil {
		return err
	}
	if err := p.KillWithContext(ctx); err != nil {
		return fmt.Errorf("kill process %d: %w", pid, err)
	}
	return nil
}

// FindByName returns the lowest-indexed live process named name (or
// name.exe), excluding the calling process. Zombies are skipped as in Alive.
func (c *SystemController) FindByName(ctx context.Context, name string) (int, bool) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, false
	}

	for _, p := range procs {
		if int(p.Pid) == c.self {
			continue
		}
		// Processes can exit or deny access mid-scan
		n, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if (n == name || n == name+".exe") && !isZombie(ctx, p.Pid) {
			return int(p.Pid), true
		}
	}
	return 0, false
}

// SpawnDetached starts path in its own session or process group so it
// outlives the installer.
func (c *SystemController) SpawnDetached(path string) error {
	cmd := exec.Command(path)
	// nil streams are connected to the null device
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedAttr()

	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func (c *SystemController) open(ctx context.Context, pid int) (*process.Process, error) {
	p32, ok := toPID32(pid)
	if !ok {
		return nil, fmt.Errorf("invalid pid %d", pid)
	}
	p, err := process.NewProcessWithContext(ctx, p32)
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}
	return p, nil
}
