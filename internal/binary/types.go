package binary

import (
	"fmt"

	"github.com/centy-io/centy-installer/internal/platform"
)

// Asset is a downloaded release archive whose digest matched the manifest.
type Asset struct {
	Name   string
	Data   []byte
	SHA256 string // lowercase hex
	Signed bool   // manifest signature was verified
}

// Download phases reported by DownloadError.
const (
	PhaseChecksums = "checksums"
	PhaseSignature = "signature"
	PhaseAsset     = "asset"
)

// DownloadError is returned when a release artifact cannot be fetched.
type DownloadError struct {
	Phase string // PhaseChecksums, PhaseSignature or PhaseAsset
	URL   string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.Phase, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a non-success HTTP response.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

// ChecksumNotFoundError is returned when the manifest has no entry for the asset.
type ChecksumNotFoundError struct {
	Asset string
}

func (e *ChecksumNotFoundError) Error() string {
	return fmt.Sprintf("checksum not found for %s", e.Asset)
}

// ChecksumMismatchError is returned when the asset digest differs from the manifest.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// SignatureError is returned when the manifest signature does not verify.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("checksum manifest signature verification failed: %v", e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// ArchiveReadError is returned when archive framing cannot be decoded.
type ArchiveReadError struct {
	Format platform.ArchiveFormat
	Err    error
}

func (e *ArchiveReadError) Error() string {
	return fmt.Sprintf("failed to read %s archive: %v", e.Format, e.Err)
}

func (e *ArchiveReadError) Unwrap() error {
	return e.Err
}

// BinaryNotFoundError is returned when no archive entry is the executable.
type BinaryNotFoundError struct {
	Name string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("binary %s not found in archive", e.Name)
}

// UnsupportedFormatError is returned for archive formats other than tar.gz and zip.
type UnsupportedFormatError struct {
	Format platform.ArchiveFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported archive format: %q", string(e.Format))
}

// InstallError is returned when the executable cannot be written.
type InstallError struct {
	Path string
	Op   string // "mkdir", "write" or "chmod"
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
