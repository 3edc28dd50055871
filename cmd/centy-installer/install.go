package main

import (
	"context"
	"errors"
	"io"

	"github.com/centy-io/centy-installer/internal/config"
	"github.com/centy-io/centy-installer/internal/installer"
	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/platform"
)

// runInstall loads settings, applies flag overrides and runs the pipeline.
// It returns the installed path.
func runInstall(ctx context.Context, opts *cliOptions, logOut io.Writer) (string, error) {
	logger := logging.NewCharm(logOut, opts.verbose)

	home, err := installer.ResolveHome()
	if err != nil {
		return "", &installer.Error{Stage: installer.StageHome, Err: err}
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath(home)
	}

	parser := config.NewParser(platform.NewDetector(), logger)
	cfg, err := parser.Load(ctx, configPath)
	if err != nil {
		return "", errors.New(config.FormatError(err, opts.verbose))
	}

	// Flags override the settings file
	if opts.pre {
		cfg.Prerelease = true
	}
	if opts.noRestart {
		cfg.Restart = false
	}

	in, err := installer.FromConfig(cfg, home, logger)
	if err != nil {
		return "", err
	}

	res, err := in.Install(ctx, installer.Options{
		Version: opts.version,
		Restart: cfg.Restart,
	})
	if err != nil {
		return "", err
	}

	if res.DaemonWasRunning {
		logger.Info("daemon restarted with the new binary")
	}
	return res.Path, nil
}
