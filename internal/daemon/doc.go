// Package daemon finds, stops and starts the centy-daemon process.
//
// The installer has no channel to the daemon. It finds the process through the
// advisory PID file the daemon writes (<home>/.centy/daemon.pid) or, failing
// that, by executable name, and drives it through OS signals:
//
//	NotRunning -> Discovered -> TermSent -> Stopped
//	                                     -> KillSent -> Stopped
//	NotRunning -> Skipped
//
// Starting the new binary is a separate step after Stopped. Nothing prevents a
// second installer from racing on the PID file or the install path.
package daemon
