package binary

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork

	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/release"
)

// Fetcher downloads a release's checksum manifest and asset and refuses any
// asset whose digest does not match.
type Fetcher struct {
	downloader *Downloader
	keyring    openpgp.EntityList
	logger     logging.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithKeyring requires the manifest to be signed by one of keyring's keys.
// An empty keyring disables the signature check.
func WithKeyring(keyring openpgp.EntityList) FetcherOption {
	return func(f *Fetcher) { f.keyring = keyring }
}

// WithFetchLogger sets the fetcher's logger.
func WithFetchLogger(l logging.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logging.OrNop(l) }
}

// NewFetcher creates a fetcher using d for every request.
func NewFetcher(d *Downloader, opts ...FetcherOption) *Fetcher {
	if d == nil {
		d = NewDownloader(nil)
	}
	f := &Fetcher{
		downloader: d,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAndVerify downloads the manifest and then the asset described by info,
// sequentially, and returns the asset only if its SHA-256 digest equals the
// manifest entry for info.AssetName.
func (f *Fetcher) FetchAndVerify(ctx context.Context, info release.Info) (*Asset, error) {
	manifest, err := f.downloader.Get(ctx, info.ChecksumsURL)
	if err != nil {
		return nil, &DownloadError{Phase: PhaseChecksums, URL: info.ChecksumsURL, Err: err}
	}

	signed := false
	if len(f.keyring) > 0 {
		sigURL := info.SignatureURL()
		sig, err := f.downloader.Get(ctx, sigURL)
		if err != nil {
			return nil, &DownloadError{Phase: PhaseSignature, URL: sigURL, Err: err}
		}
		if err := VerifySignature(f.keyring, manifest, sig); err != nil {
			return nil, err
		}
		signed = true
		f.logger.Debug("checksum manifest signature verified", "url", sigURL)
	}

	expected, err := ParseChecksum(string(manifest), info.AssetName)
	if err != nil {
		return nil, err
	}

	data, err := f.downloader.Get(ctx, info.AssetURL)
	if err != nil {
		return nil, &DownloadError{Phase: PhaseAsset, URL: info.AssetURL, Err: err}
	}

	actual, err := VerifyChecksum(data, expected)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("checksum verified", "asset", info.AssetName, "sha256", actual)

	return &Asset{
		Name:   info.AssetName,
		Data:   data,
		SHA256: actual,
		Signed: signed,
	}, nil
}

// ParseChecksum returns the digest listed for filename in a
// "<hex-digest> <filename>" manifest. Lines that do not split into exactly two
// fields are skipped whatever their length. Filenames are matched exactly and
// the first match wins.
func ParseChecksum(manifest, filename string) (string, error) {
	for line := range strings.Lines(manifest) {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		if parts[1] == filename {
			return parts[0], nil
		}
	}

	return "", &ChecksumNotFoundError{Asset: filename}
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum compares the digest of data with expected, ignoring case,
// and returns the computed digest.
func VerifyChecksum(data []byte, expected string) (string, error) {
	actual := SHA256Hex(data)
	expected = strings.ToLower(expected)
	if actual != expected {
		return actual, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return actual, nil
}

// VerifySignature checks a detached OpenPGP signature (armored or binary) over
// signed against keyring.
func VerifySignature(keyring openpgp.EntityList, signed, signature []byte) error {
	if len(keyring) == 0 {
		return &SignatureError{Err: fmt.Errorf("keyring is empty")}
	}

	_, err := openpgp.CheckArmoredDetachedSignature(keyring, bytes.NewReader(signed), bytes.NewReader(signature), nil)
	if err != nil {
		_, err = openpgp.CheckDetachedSignature(keyring, bytes.NewReader(signed), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return &SignatureError{Err: err}
	}
	return nil
}
