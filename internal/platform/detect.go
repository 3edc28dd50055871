package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running host.
type RealDetector struct{}

// NewDetector creates a new host detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect reports runtime.GOOS and runtime.GOARCH, plus Linux distribution
// details from gopsutil when they are available.
//
// Distribution detection is best effort: on failure the distro fields stay
// empty and detection still succeeds. Only context cancellation is fatal.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if runtime.GOOS != "linux" {
		return info, nil
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	if platform = normalizeID(platform); platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizeID(version)
	}

	return info, nil
}

func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily folds the family string gopsutil reports into one of the Family
// constants. Some releases report the distribution itself (ubuntu, manjaro)
// rather than its parent.
func mapFamily(family string) string {
	switch normalizeID(family) {
	case "debian", "ubuntu":
		return FamilyDebian
	case "rhel", "centos", "rocky":
		return FamilyRHEL
	case "fedora":
		return FamilyFedora
	case "suse", "opensuse":
		return FamilySUSE
	case "arch", "manjaro":
		return FamilyArch
	case "alpine":
		return FamilyAlpine
	case "gentoo":
		return FamilyGentoo
	default:
		return FamilyUnknown
	}
}
