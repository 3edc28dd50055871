package platform

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestResolve_SupportedMatrix(t *testing.T) {
	tests := []struct {
		goos        string
		goarch      string
		wantTarget  string
		wantArchive ArchiveFormat
	}{
		{"darwin", "arm64", "aarch64-apple-darwin", ArchiveTarGz},
		{"darwin", "amd64", "x86_64-apple-darwin", ArchiveTarGz},
		{"linux", "arm64", "aarch64-unknown-linux-gnu", ArchiveTarGz},
		{"linux", "amd64", "x86_64-unknown-linux-gnu", ArchiveTarGz},
		{"windows", "amd64", "x86_64-pc-windows-msvc", ArchiveZip},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"_"+tt.goarch, func(t *testing.T) {
			p, err := Resolve(tt.goos, tt.goarch)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.Target != tt.wantTarget {
				t.Errorf("Target = %q, want %q", p.Target, tt.wantTarget)
			}
			if p.Archive != tt.wantArchive {
				t.Errorf("Archive = %q, want %q", p.Archive, tt.wantArchive)
			}
		})
	}
}

func TestResolve_Unsupported(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
	}{
		{"linux", "386"},
		{"linux", "riscv64"},
		{"windows", "arm64"},
		{"freebsd", "amd64"},
		{"plan9", "arm"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"_"+tt.goarch, func(t *testing.T) {
			_, err := Resolve(tt.goos, tt.goarch)
			if err == nil {
				t.Fatal("expected error for unsupported platform")
			}

			var unsupported *UnsupportedPlatformError
			if !errors.As(err, &unsupported) {
				t.Fatalf("error type = %T, want *UnsupportedPlatformError", err)
			}
			if unsupported.OS != tt.goos || unsupported.Arch != tt.goarch {
				t.Errorf("error names %s-%s, want %s-%s", unsupported.OS, unsupported.Arch, tt.goos, tt.goarch)
			}
			if !strings.Contains(err.Error(), tt.goos+"-"+tt.goarch) {
				t.Errorf("error message %q does not name the pair", err.Error())
			}
		})
	}
}

func TestSupported(t *testing.T) {
	pairs := Supported()
	if len(pairs) != 5 {
		t.Fatalf("Supported() returned %d pairs, want 5", len(pairs))
	}
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "/", 2)
		if len(parts) != 2 {
			t.Fatalf("malformed pair %q", pair)
		}
		p, err := Resolve(parts[0], parts[1])
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", pair, err)
		}
		if p.Target == "" || p.Archive == "" {
			t.Errorf("Resolve(%q) returned empty platform", pair)
		}
	}
}

func TestDetect_CurrentHost(t *testing.T) {
	p, err := Detect()

	if _, ok := targets[osArch{runtime.GOOS, runtime.GOARCH}]; !ok {
		if err == nil {
			t.Fatal("expected error on unsupported test host")
		}
		t.Skipf("test host %s/%s is outside the support matrix", runtime.GOOS, runtime.GOARCH)
	}

	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if p.Target == "" {
		t.Error("Target should not be empty")
	}

	want := ArchiveTarGz
	if runtime.GOOS == "windows" {
		want = ArchiveZip
	}
	if p.Archive != want {
		t.Errorf("Archive = %q, want %q", p.Archive, want)
	}
}

func TestPlatformString(t *testing.T) {
	p := Platform{Target: "x86_64-pc-windows-msvc", Archive: ArchiveZip}
	if got := p.String(); got != "x86_64-pc-windows-msvc.zip" {
		t.Errorf("String() = %q", got)
	}
}
