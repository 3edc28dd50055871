package testutil_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/centy-io/centy-installer/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	home := testutil.SetupTestEnv(t)

	got, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}
	if got != home {
		t.Errorf("UserHomeDir() = %q, want %q", got, home)
	}

	if info, err := os.Stat(filepath.Join(home, ".centy")); err != nil || !info.IsDir() {
		t.Errorf(".centy not created: %v", err)
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	home1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		home2 := testutil.SetupTestEnv(t)
		if home1 == home2 {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestReleaseServer(t *testing.T) {
	rs := testutil.NewReleaseServer(t, "centy-io/centy-daemon")
	rs.AddRelease(t, "v0.1.0", []byte("old"), "x86_64-unknown-linux-gnu")
	rs.AddRelease(t, "v0.2.0", []byte("new"), "x86_64-unknown-linux-gnu", "x86_64-pc-windows-msvc")

	body := get(t, rs.URL+"/repos/centy-io/centy-daemon/releases")
	var listing []struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		t.Fatalf("listing is not JSON: %v", err)
	}
	if len(listing) != 2 || listing[0].TagName != "v0.2.0" {
		t.Errorf("listing = %+v, want v0.2.0 first", listing)
	}

	manifest := get(t, rs.URL+"/centy-io/centy-daemon/releases/download/v0.2.0/checksums-sha256.txt")
	if len(manifest) == 0 {
		t.Error("empty manifest")
	}

	resp, err := http.Get(rs.URL + "/centy-io/centy-daemon/releases/download/v9.9.9/checksums-sha256.txt")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func get(t *testing.T, url string) []byte {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
