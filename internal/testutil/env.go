// Package testutil provides utilities for testing the installer in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points the home directory at a fresh temp directory with an
// empty .centy tree and returns it. Tests using it never touch the real
// ~/.centy, its PID file or an installed daemon.
//
// The cleanup function is automatically handled by t.TempDir() and t.Setenv(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()

	// os.UserHomeDir reads HOME on unix, USERPROFILE on windows
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if err := os.MkdirAll(filepath.Join(home, ".centy"), 0o750); err != nil {
		t.Fatalf("failed to create test directory: %v", err)
	}

	return home
}
