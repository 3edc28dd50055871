package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Version will be set at build time via -ldflags
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Only the installed
// path is written to stdout; logs and errors go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Run 'centy-installer --help' for usage.")
		return 1
	}

	if opts.showHelp {
		printUsage(stdout)
		return 0
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "centy-installer %s\n", Version)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := runInstall(ctx, opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, path)
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "centy-installer installs or updates centy-daemon in ~/.centy/bin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  centy-installer [flags] [version]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a version the newest stable release is installed.")
	fmt.Fprintln(w, "A running daemon is stopped and replaced by the new binary.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, newFlagSet(&cliOptions{}).FlagUsages())
}
