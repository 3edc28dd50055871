package platform

import (
	"context"
	"runtime"
	"testing"
)

// MockDetector is a test implementation of Detector.
type MockDetector struct {
	info *Info
	err  error
}

// NewMockDetector creates a mock detector with specified return values.
func NewMockDetector(info *Info, err error) Detector {
	return &MockDetector{info: info, err: err}
}

// Detect returns the pre-configured info and error.
func (m *MockDetector) Detect(ctx context.Context) (*Info, error) {
	return m.info, m.err
}

func TestRealDetector_Detect(t *testing.T) {
	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %v, want %v", info.Arch, runtime.GOARCH)
	}

	// Family is always set alongside Platform (graceful fallback leaves both empty)
	if info.Platform != "" && info.Family == "" {
		t.Error("Family should be set when Platform is set")
	}

	if runtime.GOOS != "linux" && (info.Platform != "" || info.Family != "" || info.Version != "") {
		t.Errorf("distro fields should be empty on %s, got %+v", runtime.GOOS, info)
	}
}

func TestInfo_Target(t *testing.T) {
	detector := NewMockDetector(&Info{OS: "linux", Arch: "arm64"}, nil)

	info, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	p, err := info.Target()
	if err != nil {
		t.Fatalf("Target() error = %v", err)
	}
	if p.Target != "aarch64-unknown-linux-gnu" {
		t.Errorf("Target = %q", p.Target)
	}
}

func TestMapFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debian", FamilyDebian},
		{"Ubuntu", FamilyDebian},
		{"  rhel ", FamilyRHEL},
		{"rocky", FamilyRHEL},
		{"opensuse", FamilySUSE},
		{"manjaro", FamilyArch},
		{"alpine", FamilyAlpine},
		{"gentoo", FamilyGentoo},
		{"slackware", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		if got := mapFamily(tt.in); got != tt.want {
			t.Errorf("mapFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
