// Package release resolves which centy-daemon release to install and where
// its artifacts live.
package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

const (
	// ProductName is the release product and the daemon executable name.
	ProductName = "centy-daemon"
	// DefaultRepo is the GitHub repository publishing daemon releases.
	DefaultRepo = "centy-io/centy-daemon"
	// DefaultAPIBase is the public GitHub REST API.
	DefaultAPIBase = "https://api.github.com"
	// DefaultDownloadBase is the host serving release downloads.
	DefaultDownloadBase = "https://github.com"
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "centy-installer"
	// ChecksumsFile is the manifest published next to every release's assets.
	ChecksumsFile = "checksums-sha256.txt"
	// SignatureSuffix is appended to the manifest URL to locate its detached signature.
	SignatureSuffix = ".sig"
)

// Tag is a canonical release tag, always "v"-prefixed (e.g. "v1.2.3").
type Tag string

// String returns the tag verbatim.
func (t Tag) String() string {
	return string(t)
}

// IsPrerelease reports whether the tag carries a semver pre-release component
// (e.g. "v1.0.0-beta.1"). Tags that are not semver are never pre-releases.
func (t Tag) IsPrerelease() bool {
	v, err := semver.ParseTolerant(string(t))
	if err != nil {
		return false
	}
	return len(v.Pre) > 0
}

// NormalizeTag prefixes version with "v" unless it already has one.
func NormalizeTag(version string) Tag {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return Tag(version)
	}
	return Tag("v" + version)
}

// Info locates the artifacts of one release for one platform.
type Info struct {
	Tag          Tag
	AssetName    string // e.g. "centy-daemon-v0.2.0-aarch64-apple-darwin.tar.gz"
	AssetURL     string
	ChecksumsURL string
}

// SignatureURL returns the location of the manifest's detached signature.
func (i Info) SignatureURL() string {
	return i.ChecksumsURL + SignatureSuffix
}

// ErrNoReleasesFound is returned when the release listing yields no usable tag.
var ErrNoReleasesFound = errors.New("no releases found")

// RequestError wraps a transport failure talking to the release API.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to fetch releases: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is returned when the release API answers with a non-success status.
type APIError struct {
	StatusCode int
	Status     string // e.g. "403 Forbidden"
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API returned %s", e.Status)
}

// ParseError is returned when the release listing is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse releases JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
