package daemon

import (
	"fmt"
	"time"
)

const (
	// DefaultPollInterval is the wait between liveness probes while stopping.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultPollAttempts bounds the grace window to 10 probes (5 seconds).
	DefaultPollAttempts = 10
)

// State is a step of the stop state machine.
type State int

const (
	StateNotRunning State = iota
	StateDiscovered
	StateTermSent
	StateKillSent
	StateStopped
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StateNotRunning:
		return "not-running"
	case StateDiscovered:
		return "discovered"
	case StateTermSent:
		return "term-sent"
	case StateKillSent:
		return "kill-sent"
	case StateStopped:
		return "stopped"
	case StateSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source records how a daemon process was found.
type Source string

const (
	SourcePIDFile Source = "pidfile"
	SourceName    Source = "name"
)

// Handle identifies a running daemon. The OS owns the process; the handle
// may go stale at any moment.
type Handle struct {
	PID    int
	Source Source
}

// StopError is returned when the daemon could not be stopped.
type StopError struct {
	PID int
	// Forced is set when the process survived the forced kill.
	Forced bool
	Err    error
}

func (e *StopError) Error() string {
	if e.Forced {
		return fmt.Sprintf("failed to stop daemon (PID %d) after forced kill", e.PID)
	}
	return fmt.Sprintf("failed to send termination request to daemon (PID %d): %v", e.PID, e.Err)
}

func (e *StopError) Unwrap() error {
	return e.Err
}

// StartError is returned when the new daemon could not be spawned.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start daemon %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
