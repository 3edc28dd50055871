package binary

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/centy-io/centy-installer/internal/release"
)

// InstallDir returns <home>/.centy/bin.
func InstallDir(homeDir string) string {
	return filepath.Join(homeDir, ".centy", "bin")
}

// ExecutableName returns the daemon file name on goos.
func ExecutableName(goos string) string {
	if goos == "windows" {
		return release.ProductName + ".exe"
	}
	return release.ProductName
}

// InstallPath returns where Install writes the daemon on goos.
func InstallPath(goos, homeDir string) string {
	return filepath.Join(InstallDir(homeDir), ExecutableName(goos))
}

// Install writes the executable for the running OS. See InstallFor.
func Install(data []byte, homeDir string) (string, error) {
	return InstallFor(runtime.GOOS, data, homeDir)
}

// InstallFor writes data to <home>/.centy/bin/centy-daemon[.exe] and returns
// the path.
//
// An existing file is truncated and overwritten in place, not replaced by
// rename: a reader of the path during the write can observe a partial file.
func InstallFor(goos string, data []byte, homeDir string) (string, error) {
	dir := InstallDir(homeDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &InstallError{Path: dir, Op: "mkdir", Err: err}
	}

	dest := filepath.Join(dir, ExecutableName(goos))
	if err := os.WriteFile(dest, data, 0755); err != nil {
		return "", &InstallError{Path: dest, Op: "write", Err: err}
	}

	// WriteFile keeps the mode of an existing file and applies umask to a new one.
	if goos != "windows" {
		if err := os.Chmod(dest, 0755); err != nil {
			return "", &InstallError{Path: dest, Op: "chmod", Err: err}
		}
	}

	return dest, nil
}
