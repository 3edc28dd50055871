// Package binary fetches, verifies, unpacks and installs the centy-daemon
// executable.
//
// # Security Model
//
// Nothing is written to disk until the downloaded archive has been checked:
//   - The checksum manifest (checksums-sha256.txt) is downloaded from the release
//   - When a keyring is configured, the manifest must carry a valid detached
//     OpenPGP signature (checksums-sha256.txt.sig) from one of its keys
//   - The archive's SHA-256 digest must equal the manifest entry for its name
//
// # Usage
//
//	client := binary.NewHTTPClient(binary.DefaultTimeout)
//	fetcher := binary.NewFetcher(binary.NewDownloader(client))
//
//	asset, err := fetcher.FetchAndVerify(ctx, info)
//	if err != nil {
//	    return err
//	}
//
//	exe, err := binary.Extract(asset.Data, p.Archive)
//	if err != nil {
//	    return err
//	}
//
//	path, err := binary.Install(exe, home)
//
// # Architecture
//
// The package is organized into several components:
//   - Downloader: HTTP GET into memory with a custom User-Agent
//   - Fetcher: manifest, signature and asset download plus digest gate
//   - Extract: archive decoding (tar.gz, zip)
//   - Install: writes the executable under <home>/.centy/bin
//
// Every stage fails fast. There are no retries and no download cache.
package binary
