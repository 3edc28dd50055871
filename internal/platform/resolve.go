package platform

import "runtime"

type osArch struct {
	os   string
	arch string
}

// targets is the support matrix. Releases exist for exactly these pairs.
var targets = map[osArch]string{
	{"darwin", "arm64"}:  "aarch64-apple-darwin",
	{"darwin", "amd64"}:  "x86_64-apple-darwin",
	{"linux", "arm64"}:   "aarch64-unknown-linux-gnu",
	{"linux", "amd64"}:   "x86_64-unknown-linux-gnu",
	{"windows", "amd64"}: "x86_64-pc-windows-msvc",
}

// Resolve maps a GOOS/GOARCH pair to its release platform.
func Resolve(goos, goarch string) (Platform, error) {
	target, ok := targets[osArch{goos, goarch}]
	if !ok {
		return Platform{}, &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	return Platform{
		Target:  target,
		Archive: archiveFor(goos),
	}, nil
}

// Detect resolves the release platform of the running process.
func Detect() (Platform, error) {
	return Resolve(runtime.GOOS, runtime.GOARCH)
}

// archiveFor returns the archive format releases use on goos.
func archiveFor(goos string) ArchiveFormat {
	if goos == "windows" {
		return ArchiveZip
	}
	return ArchiveTarGz
}

// Supported returns the supported OS/architecture pairs as "os/arch" strings.
func Supported() []string {
	pairs := make([]string, 0, len(targets))
	for k := range targets {
		pairs = append(pairs, k.os+"/"+k.arch)
	}
	return pairs
}
