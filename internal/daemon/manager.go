package daemon

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/centy-io/centy-installer/internal/logging"
)

// ProcessName is the executable name searched for when the PID file is unusable.
const ProcessName = "centy-daemon"

// Config configures a Manager. Zero fields take defaults.
type Config struct {
	HomeDir      string
	Controller   Controller
	Clock        Clock
	PollInterval time.Duration
	PollAttempts int
	Logger       logging.Logger
	// OnTransition is called after every state change.
	OnTransition func(from, to State)
}

// Manager drives one discover/stop/start cycle. It is not safe for
// concurrent use.
type Manager struct {
	home         string
	ctl          Controller
	clock        Clock
	interval     time.Duration
	attempts     int
	logger       logging.Logger
	onTransition func(from, to State)

	state State
}

// NewManager creates a manager for the daemon of the user whose home
// directory is cfg.HomeDir.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		home:         cfg.HomeDir,
		ctl:          cfg.Controller,
		clock:        cfg.Clock,
		interval:     cfg.PollInterval,
		attempts:     cfg.PollAttempts,
		logger:       logging.OrNop(cfg.Logger),
		onTransition: cfg.OnTransition,
		state:        StateNotRunning,
	}
	if m.ctl == nil {
		m.ctl = NewSystemController()
	}
	if m.clock == nil {
		m.clock = RealClock{}
	}
	if m.interval <= 0 {
		m.interval = DefaultPollInterval
	}
	if m.attempts <= 0 {
		m.attempts = DefaultPollAttempts
	}
	return m
}

// PIDFilePath returns <home>/.centy/daemon.pid.
func PIDFilePath(homeDir string) string {
	return filepath.Join(homeDir, ".centy", "daemon.pid")
}

// State returns the current state.
func (m *Manager) State() State {
	return m.state
}

func (m *Manager) transition(to State) {
	from := m.state
	m.state = to
	m.logger.Debug("daemon state", "from", from, "to", to)
	if m.onTransition != nil {
		m.onTransition(from, to)
	}
}

// Discover locates a running daemon: first the PID file, if it holds the PID
// of a live process, then a search by process name. A missing, empty, garbled
// or stale PID file is not an error.
func (m *Manager) Discover(ctx context.Context) (Handle, bool) {
	if pid, ok := readPIDFile(PIDFilePath(m.home)); ok {
		if m.ctl.Alive(ctx, pid) {
			m.logger.Debug("daemon found via pid file", "pid", pid)
			m.transition(StateDiscovered)
			return Handle{PID: pid, Source: SourcePIDFile}, true
		}
		m.logger.Debug("ignoring stale pid file", "pid", pid)
	}

	if pid, ok := m.ctl.FindByName(ctx, ProcessName); ok {
		m.logger.Debug("daemon found by name", "pid", pid)
		m.transition(StateDiscovered)
		return Handle{PID: pid, Source: SourceName}, true
	}

	return Handle{}, false
}

// readPIDFile returns the positive PID stored at path.
func readPIDFile(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 32)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return int(pid), true
}

// Stop asks h to exit and escalates to a forced kill after the grace window.
//
// A termination request the OS rejects fails immediately without escalation.
// The wait between probes cannot be cancelled; ctx only bounds the process
// queries.
func (m *Manager) Stop(ctx context.Context, h Handle) error {
	if err := m.ctl.Terminate(ctx, h.PID); err != nil {
		return &StopError{PID: h.PID, Err: err}
	}
	m.transition(StateTermSent)
	sent := m.clock.Now()

	for i := 0; i < m.attempts; i++ {
		m.clock.Sleep(m.interval)
		if !m.ctl.Alive(ctx, h.PID) {
			m.logger.Debug("daemon exited", "pid", h.PID, "probes", i+1, "elapsed", m.clock.Now().Sub(sent))
			m.transition(StateStopped)
			return nil
		}
	}

	m.logger.Warn("daemon did not exit in time, killing", "pid", h.PID, "waited", m.clock.Now().Sub(sent))
	if err := m.ctl.Kill(ctx, h.PID); err != nil {
		m.logger.Warn("forced kill failed", "pid", h.PID, "err", err)
	}
	m.transition(StateKillSent)

	m.clock.Sleep(m.interval)
	if m.ctl.Alive(ctx, h.PID) {
		return &StopError{PID: h.PID, Forced: true}
	}

	m.transition(StateStopped)
	return nil
}

// Start launches the binary at path in the background. It does not check
// that the new daemon stays up.
func (m *Manager) Start(path string) error {
	if err := m.ctl.SpawnDetached(path); err != nil {
		return &StartError{Path: path, Err: err}
	}
	m.logger.Debug("daemon started", "path", path)
	return nil
}

// RestartIfRunning replaces a running daemon with the binary at path.
// It returns false, without error, when no daemon is running, and true only
// after both the stop and the start succeeded.
func (m *Manager) RestartIfRunning(ctx context.Context, path string) (bool, error) {
	h, ok := m.Discover(ctx)
	if !ok {
		m.transition(StateSkipped)
		return false, nil
	}

	if err := m.Stop(ctx, h); err != nil {
		return false, err
	}
	if err := m.Start(path); err != nil {
		return false, err
	}
	return true, nil
}
