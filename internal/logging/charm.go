package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// charmLogger adapts charmbracelet/log to the Logger interface.
type charmLogger struct {
	l *log.Logger
}

// NewCharm returns a Logger writing to w. Debug output is enabled only when
// verbose is set.
func NewCharm(w io.Writer, verbose bool) Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return &charmLogger{
		l: log.NewWithOptions(w, log.Options{
			Level:  level,
			Prefix: "centy-installer",
		}),
	}
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}
