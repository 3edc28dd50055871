package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/centy-io/centy-installer/internal/binary"
	"github.com/centy-io/centy-installer/internal/release"
)

// Config holds the installer settings.
type Config struct {
	// Repo is the "owner/name" GitHub repository publishing releases.
	Repo string

	// APIBase is the GitHub REST API root used to list releases.
	APIBase string

	// DownloadBase is the host serving release assets.
	DownloadBase string

	UserAgent string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Prerelease lets "latest" resolve to a pre-release.
	Prerelease bool

	// Restart replaces a running daemon after installing.
	Restart bool

	// Keyring is an OpenPGP public keyring used to verify the checksum
	// manifest signature. Empty disables the check. A leading "~/" refers to
	// the home directory.
	Keyring string
}

// Defaults returns the settings used when no file is present.
func Defaults() *Config {
	return &Config{
		Repo:         release.DefaultRepo,
		APIBase:      release.DefaultAPIBase,
		DownloadBase: release.DefaultDownloadBase,
		UserAgent:    release.DefaultUserAgent,
		Timeout:      binary.DefaultTimeout,
		Prerelease:   false,
		Restart:      true,
	}
}

// DefaultPath returns <home>/.centy/installer.lua.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, ".centy", FileName)
}

var repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if !repoPattern.MatchString(c.Repo) {
		return fmt.Errorf("repo %q must have the form owner/name", c.Repo)
	}
	if err := validateBaseURL(luaFieldAPIBase, c.APIBase); err != nil {
		return err
	}
	if err := validateBaseURL(luaFieldDownload, c.DownloadBase); err != nil {
		return err
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("user_agent must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

func validateBaseURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must be an http or https URL", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q has no host", field, raw)
	}
	return nil
}

// KeyringPath returns Keyring with a leading "~/" expanded against homeDir.
func (c *Config) KeyringPath(homeDir string) string {
	if c.Keyring == "~" {
		return homeDir
	}
	if rest, ok := strings.CutPrefix(c.Keyring, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return c.Keyring
}
