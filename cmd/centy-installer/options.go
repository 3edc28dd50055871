package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

type cliOptions struct {
	version     string
	pre         bool
	noRestart   bool
	configPath  string
	verbose     bool
	showHelp    bool
	showVersion bool
}

func newFlagSet(opts *cliOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet("centy-installer", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVar(&opts.pre, "pre", false, "allow a pre-release when resolving the latest version")
	fs.BoolVar(&opts.noRestart, "no-restart", false, "do not stop and restart a running daemon")
	fs.StringVar(&opts.configPath, "config", "", "settings file (default ~/.centy/installer.lua)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "print the installer version")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "show this help")
	return fs
}

// parseArgs parses flags and the optional version argument.
func parseArgs(args []string) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		opts.version = rest[0]
	default:
		return nil, fmt.Errorf("expected at most one version argument, got %d", len(rest))
	}

	return opts, nil
}
