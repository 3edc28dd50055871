package installer

import (
	"fmt"

	"github.com/centy-io/centy-installer/internal/binary"
	"github.com/centy-io/centy-installer/internal/config"
	"github.com/centy-io/centy-installer/internal/logging"
	"github.com/centy-io/centy-installer/internal/release"
)

// FromConfig wires an installer for homeDir from loaded settings. The HTTP
// client, with cfg.Timeout, is shared by release resolution and downloads.
func FromConfig(cfg *config.Config, homeDir string, logger logging.Logger) (*Installer, error) {
	logger = logging.OrNop(logger)
	client := binary.NewHTTPClient(cfg.Timeout)

	resolver := release.NewResolver(client, cfg.APIBase,
		release.WithRepo(cfg.Repo),
		release.WithUserAgent(cfg.UserAgent),
		release.WithLogger(logger),
	)
	resolver.StableOnly = !cfg.Prerelease

	fetchOpts := []binary.FetcherOption{binary.WithFetchLogger(logger)}
	if cfg.Keyring != "" {
		path := cfg.KeyringPath(homeDir)
		keyring, err := binary.LoadKeyring(path)
		if err != nil {
			return nil, fmt.Errorf("load keyring: %w", err)
		}
		logger.Debug("manifest signatures required", "keyring", path, "keys", len(keyring))
		fetchOpts = append(fetchOpts, binary.WithKeyring(keyring))
	}

	downloader := binary.NewDownloader(client,
		binary.WithUserAgent(cfg.UserAgent),
		binary.WithDownloadLogger(logger),
	)

	return New(Config{
		HomeDir:  homeDir,
		Resolver: resolver,
		Locator:  release.Locator{DownloadBase: cfg.DownloadBase, Repo: cfg.Repo},
		Fetcher:  binary.NewFetcher(downloader, fetchOpts...),
		Logger:   logger,
	}), nil
}
