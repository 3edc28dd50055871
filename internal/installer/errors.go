package installer

import (
	"errors"
	"fmt"
)

// Stage names a pipeline step.
type Stage string

const (
	StagePlatform     Stage = "platform"
	StageHome         Stage = "home"
	StageVersion      Stage = "version"
	StageDownload     Stage = "download"
	StageExtraction   Stage = "extraction"
	StageInstallation Stage = "installation"
	StageRestart      Stage = "restart"
)

var stageMessages = map[Stage]string{
	StagePlatform:     "platform detection failed",
	StageHome:         "home directory lookup failed",
	StageVersion:      "version resolution failed",
	StageDownload:     "download failed",
	StageExtraction:   "extraction failed",
	StageInstallation: "installation failed",
	StageRestart:      "daemon restart failed",
}

// Error reports the pipeline stage that failed. The underlying typed error
// is reachable with errors.As.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	msg, ok := stageMessages[e.Stage]
	if !ok {
		msg = string(e.Stage) + " failed"
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrHomeDirectoryUnresolvable is returned when the user's home directory
// cannot be determined.
var ErrHomeDirectoryUnresolvable = errors.New("could not determine home directory")
