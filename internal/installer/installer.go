// Package installer runs the update pipeline: resolve the platform and the
// release, fetch and verify the archive, install the daemon and restart it if
// it was running.
package installer

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/centy-io/centy-installer/internal/binary"
	"github.com/centy-io/centy-installer/internal/daemon"
	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/platform"
	"github.com/centy-io/centy-installer/internal/release"
)

// Restarter replaces a running daemon with a freshly installed binary.
// *daemon.Manager implements it.
type Restarter interface {
	RestartIfRunning(ctx context.Context, path string) (bool, error)
}

// Options selects what one run installs.
type Options struct {
	// Version pins a release ("1.2.3" or "v1.2.3"). Empty means latest.
	Version string
	// Restart replaces a running daemon after installing.
	Restart bool
}

// Result describes a completed install.
type Result struct {
	Path             string
	Tag              release.Tag
	Platform         platform.Platform
	Signed           bool
	DaemonWasRunning bool
}

// Config wires an Installer. Zero fields take defaults.
type Config struct {
	// GOOS and GOARCH select the release platform; default to the running host.
	GOOS   string
	GOARCH string

	// HomeDir roots the install; defaults to the current user's home.
	HomeDir string

	Resolver *release.Resolver
	Locator  release.Locator
	Fetcher  *binary.Fetcher

	// Restarter defaults to a daemon.Manager for HomeDir.
	Restarter Restarter

	Logger logging.Logger
}

// Installer runs the pipeline. Every stage fails fast; nothing is retried and
// nothing is rolled back.
type Installer struct {
	goos      string
	goarch    string
	home      string
	resolver  *release.Resolver
	locator   release.Locator
	fetcher   *binary.Fetcher
	restarter Restarter
	logger    logging.Logger
}

// New creates an installer from cfg.
func New(cfg Config) *Installer {
	in := &Installer{
		goos:      cfg.GOOS,
		goarch:    cfg.GOARCH,
		home:      cfg.HomeDir,
		resolver:  cfg.Resolver,
		locator:   cfg.Locator,
		fetcher:   cfg.Fetcher,
		restarter: cfg.Restarter,
		logger:    logging.OrNop(cfg.Logger),
	}
	if in.goos == "" {
		in.goos = runtime.GOOS
	}
	if in.goarch == "" {
		in.goarch = runtime.GOARCH
	}
	if in.resolver == nil {
		in.resolver = release.NewResolver(binary.NewHTTPClient(binary.DefaultTimeout), release.DefaultAPIBase,
			release.WithLogger(in.logger))
	}
	if in.locator == (release.Locator{}) {
		in.locator = release.DefaultLocator
	}
	if in.fetcher == nil {
		in.fetcher = binary.NewFetcher(binary.NewDownloader(nil), binary.WithFetchLogger(in.logger))
	}
	return in
}

// ResolveHome returns the current user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeDirectoryUnresolvable, err)
	}
	if home == "" {
		return "", ErrHomeDirectoryUnresolvable
	}
	return home, nil
}

// Install runs platform, home, version, download, extraction, installation
// and, if opts.Restart is set, restart, in that order. Failures are *Error.
func (in *Installer) Install(ctx context.Context, opts Options) (*Result, error) {
	p, err := platform.Resolve(in.goos, in.goarch)
	if err != nil {
		return nil, &Error{Stage: StagePlatform, Err: err}
	}
	in.logger.Debug("resolved platform", "target", p.Target, "archive", p.Archive)

	home := in.home
	if home == "" {
		if home, err = ResolveHome(); err != nil {
			return nil, &Error{Stage: StageHome, Err: err}
		}
	}

	tag, err := in.resolver.Resolve(ctx, opts.Version)
	if err != nil {
		return nil, &Error{Stage: StageVersion, Err: err}
	}
	in.logger.Info("installing centy-daemon", "version", tag, "target", p.Target)

	info := in.locator.Locate(tag, p)

	asset, err := in.fetcher.FetchAndVerify(ctx, info)
	if err != nil {
		return nil, &Error{Stage: StageDownload, Err: err}
	}

	exe, err := binary.Extract(asset.Data, p.Archive)
	if err != nil {
		return nil, &Error{Stage: StageExtraction, Err: err}
	}

	path, err := binary.InstallFor(in.goos, exe, home)
	if err != nil {
		return nil, &Error{Stage: StageInstallation, Err: err}
	}
	in.logger.Info("installed", "path", path)

	result := &Result{
		Path:     path,
		Tag:      tag,
		Platform: p,
		Signed:   asset.Signed,
	}

	if !opts.Restart {
		return result, nil
	}

	restarter := in.restarter
	if restarter == nil {
		restarter = daemon.NewManager(daemon.Config{HomeDir: home, Logger: in.logger})
	}

	running, err := restarter.RestartIfRunning(ctx, path)
	if err != nil {
		return nil, &Error{Stage: StageRestart, Err: err}
	}
	result.DaemonWasRunning = running
	if running {
		in.logger.Info("restarted daemon", "path", path)
	}

	return result, nil
}
