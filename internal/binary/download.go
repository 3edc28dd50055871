package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/release"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	maxRedirects   = 10
)

// NewHTTPClient returns the client shared by release resolution and downloads.
// GitHub serves assets through redirects to its object storage.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Downloader fetches URLs into memory.
type Downloader struct {
	client    *http.Client
	userAgent string
	logger    logging.Logger
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) DownloaderOption {
	return func(d *Downloader) { d.userAgent = ua }
}

// WithDownloadLogger sets the downloader's logger.
func WithDownloadLogger(l logging.Logger) DownloaderOption {
	return func(d *Downloader) { d.logger = logging.OrNop(l) }
}

// NewDownloader creates a new downloader
func NewDownloader(client *http.Client, opts ...DownloaderOption) *Downloader {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	d := &Downloader{
		client:    client,
		userAgent: release.DefaultUserAgent,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get downloads url and returns the whole body. Non-2xx responses fail with
// *HTTPStatusError.
func (d *Downloader) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	d.logger.Debug("downloading", "url", url)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	d.logger.Debug("downloaded", "url", url, "bytes", len(data))
	return data, nil
}
