package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/centy-io/centy-installer/internal/logging"
)

const githubAcceptHeader = "application/vnd.github+json"

// Resolver turns a requested version, or a request for the latest release,
// into a canonical Tag.
type Resolver struct {
	client    *http.Client
	apiBase   string
	repo      string
	userAgent string

	// StableOnly skips pre-releases when resolving the latest release. The
	// zero value takes the first listed release, pre-release or not.
	StableOnly bool

	logger logging.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRepo sets the "owner/name" repository whose releases are listed.
func WithRepo(repo string) ResolverOption {
	return func(r *Resolver) { r.repo = repo }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ResolverOption {
	return func(r *Resolver) { r.userAgent = ua }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logging.OrNop(l) }
}

// DefaultTimeout bounds the release listing request when NewResolver is
// given no client.
const DefaultTimeout = time.Minute

// NewResolver creates a resolver listing releases from apiBase.
// An empty apiBase selects DefaultAPIBase and a nil client one limited to
// DefaultTimeout.
func NewResolver(client *http.Client, apiBase string, opts ...ResolverOption) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	r := &Resolver{
		client:    client,
		apiBase:   strings.TrimRight(apiBase, "/"),
		repo:      DefaultRepo,
		userAgent: DefaultUserAgent,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the tag to install.
//
// A non-empty requested version is normalized locally and never touches the
// network. An empty one resolves to the newest listed release.
func (r *Resolver) Resolve(ctx context.Context, requested string) (Tag, error) {
	if v := strings.TrimSpace(requested); v != "" {
		tag := NormalizeTag(v)
		r.logger.Debug("using requested version", "tag", tag)
		return tag, nil
	}

	return r.latest(ctx)
}

// latest fetches the release listing (newest first) and selects a tag.
func (r *Resolver) latest(ctx context.Context) (Tag, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", r.apiBase, r.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &RequestError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", githubAcceptHeader)

	r.logger.Debug("listing releases", "url", url)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	tag, err := selectTag(body, r.StableOnly)
	if err != nil {
		return "", err
	}

	r.logger.Debug("resolved latest release", "tag", tag, "prerelease", tag.IsPrerelease())
	return tag, nil
}

// listedRelease is the subset of a release listing entry the resolver reads.
type listedRelease struct {
	tag        string
	prerelease bool
}

// parseListedRelease extracts the fields of one listing entry. Entries that
// are not objects, or whose tag_name is absent or not a string, carry no tag.
func parseListedRelease(raw json.RawMessage) listedRelease {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return listedRelease{}
	}

	tag, _ := fields["tag_name"].(string)
	pre, _ := fields["prerelease"].(bool)
	return listedRelease{tag: tag, prerelease: pre}
}

// selectTag picks the tag from a release listing body.
func selectTag(body []byte, stableOnly bool) (Tag, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Valid JSON that is not an array lists no releases.
			return "", ErrNoReleasesFound
		}
		return "", &ParseError{Err: err}
	}

	for _, raw := range entries {
		rel := parseListedRelease(raw)

		if stableOnly && (rel.prerelease || Tag(rel.tag).IsPrerelease()) {
			continue
		}

		if rel.tag == "" {
			return "", ErrNoReleasesFound
		}
		return Tag(rel.tag), nil
	}

	return "", ErrNoReleasesFound
}
