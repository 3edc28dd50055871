package testutil

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// ReleaseServer fakes the GitHub release API and download host for one
// repository. Both are served from the same httptest server.
type ReleaseServer struct {
	*httptest.Server

	Repo string

	mu       sync.Mutex
	tags     []string
	files    map[string][]byte // "<tag>/<name>" -> content
	requests []string
}

// NewReleaseServer starts an empty release server for repo.
func NewReleaseServer(t *testing.T, repo string) *ReleaseServer {
	t.Helper()

	rs := &ReleaseServer{Repo: repo, files: map[string][]byte{}}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.serve))
	t.Cleanup(rs.Close)
	return rs
}

// AddRelease publishes tag (newest first in the listing) with one archive per
// target, each containing exe, plus a checksums-sha256.txt manifest.
func (rs *ReleaseServer) AddRelease(t *testing.T, tag string, exe []byte, targets ...string) {
	t.Helper()

	var manifest strings.Builder
	for _, target := range targets {
		var name string
		var archive []byte
		if strings.Contains(target, "windows") {
			name = fmt.Sprintf("centy-daemon-%s-%s.zip", tag, target)
			archive = ZipArchive(t, map[string][]byte{"centy-daemon.exe": exe})
		} else {
			name = fmt.Sprintf("centy-daemon-%s-%s.tar.gz", tag, target)
			archive = TarGzArchive(t, map[string][]byte{"centy-daemon": exe})
		}
		sum := sha256.Sum256(archive)
		fmt.Fprintf(&manifest, "%s  %s\n", hex.EncodeToString(sum[:]), name)
		rs.SetFile(tag, name, archive)
	}
	rs.SetFile(tag, "checksums-sha256.txt", []byte(manifest.String()))

	rs.mu.Lock()
	rs.tags = append([]string{tag}, rs.tags...)
	rs.mu.Unlock()
}

// SetFile publishes or replaces a release file.
func (rs *ReleaseServer) SetFile(tag, name string, content []byte) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.files[tag+"/"+name] = content
}

// Requests returns the paths requested so far.
func (rs *ReleaseServer) Requests() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.requests...)
}

func (rs *ReleaseServer) serve(w http.ResponseWriter, r *http.Request) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.requests = append(rs.requests, r.URL.Path)

	if r.URL.Path == "/repos/"+rs.Repo+"/releases" {
		w.Header().Set("Content-Type", "application/json")
		entries := make([]string, 0, len(rs.tags))
		for _, tag := range rs.tags {
			entries = append(entries, fmt.Sprintf(`{"tag_name":%q,"prerelease":%t}`, tag, strings.Contains(tag, "-")))
		}
		fmt.Fprintf(w, "[%s]", strings.Join(entries, ","))
		return
	}

	prefix := "/" + rs.Repo + "/releases/download/"
	if key, ok := strings.CutPrefix(r.URL.Path, prefix); ok {
		if content, ok := rs.files[key]; ok {
			_, _ = w.Write(content)
			return
		}
	}

	http.NotFound(w, r)
}

// TarGzArchive builds a .tar.gz archive of regular files.
func TarGzArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for name, content := range files {
		header := &tar.Header{Name: name, Mode: 0755, Size: int64(len(content)), Typeflag: tar.TypeReg}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", name, err)
		}
		if _, err := tarWriter.Write(content); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	if err := gzipWriter.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// ZipArchive builds a .zip archive of regular files.
func ZipArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zipWriter.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}
