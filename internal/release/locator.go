package release

import (
	"fmt"
	"strings"

	"github.com/centy-io/centy-installer/internal/platform"
)

// Locator builds release artifact URLs under a download host and repository.
type Locator struct {
	DownloadBase string // e.g. "https://github.com"
	Repo         string // e.g. "centy-io/centy-daemon"
}

// DefaultLocator points at the public GitHub releases of centy-daemon.
var DefaultLocator = Locator{
	DownloadBase: DefaultDownloadBase,
	Repo:         DefaultRepo,
}

// Locate returns the artifact locations of tag for p using DefaultLocator.
func Locate(tag Tag, p platform.Platform) Info {
	return DefaultLocator.Locate(tag, p)
}

// Locate returns the artifact locations of tag for p.
// Pattern: {base}/{repo}/releases/download/{tag}/centy-daemon-{tag}-{target}{ext}
//
// The tag is used verbatim, "v" included, in both the URL path and the asset
// name, so the name requested is the name looked up in the manifest.
func (l Locator) Locate(tag Tag, p platform.Platform) Info {
	assetName := fmt.Sprintf("%s-%s-%s%s", ProductName, tag, p.Target, p.Archive)
	dir := fmt.Sprintf("%s/%s/releases/download/%s",
		strings.TrimRight(l.DownloadBase, "/"), strings.Trim(l.Repo, "/"), tag)

	return Info{
		Tag:          tag,
		AssetName:    assetName,
		AssetURL:     dir + "/" + assetName,
		ChecksumsURL: dir + "/" + ChecksumsFile,
	}
}
