// Package platform maps the running host to the centy-daemon release artifact
// it needs and exposes host details to the installer configuration.
//
// Resolve is a pure lookup over a fixed support matrix of (GOOS, GOARCH) pairs.
// The Detector adds Linux distribution details via gopsutil for diagnostics and
// for the read-only `platform` table injected into the Lua configuration.
package platform

import (
	"context"
	"fmt"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// ArchiveFormat is the container format a release asset is published in.
// Its value is the file extension appended to the asset name.
type ArchiveFormat string

const (
	// ArchiveTarGz is a gzip-compressed tarball.
	ArchiveTarGz ArchiveFormat = ".tar.gz"
	// ArchiveZip is a zip archive (Windows releases).
	ArchiveZip ArchiveFormat = ".zip"
)

// String returns the file extension of the format.
func (f ArchiveFormat) String() string {
	return string(f)
}

// Platform identifies the release artifact built for one OS/architecture pair.
type Platform struct {
	Target  string        // target triple, e.g. "x86_64-unknown-linux-gnu"
	Archive ArchiveFormat // archive format of the release asset
}

// String returns the target triple followed by the archive extension.
func (p Platform) String() string {
	return p.Target + p.Archive.String()
}

// UnsupportedPlatformError is returned when no release is built for the host.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s-%s", e.OS, e.Arch)
}

// Info contains host detection information.
type Info struct {
	OS       string // GOOS: "linux", "darwin", "windows"
	Arch     string // GOARCH: "amd64", "arm64", ...
	Platform string // distro ID (Linux only, e.g., "ubuntu", "arch")
	Family   string // canonical family (e.g., "debian", "rhel", "arch")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Target resolves the release platform for the detected OS and architecture.
func (i *Info) Target() (Platform, error) {
	return Resolve(i.OS, i.Arch)
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// HasDistro reports whether Linux distribution details were detected.
func (i *Info) HasDistro() bool {
	return i.IsLinux() && i.Platform != ""
}

// Detector is the interface for host detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
