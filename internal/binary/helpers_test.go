package binary

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"       //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/armor" //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

type archiveEntry struct {
	name    string
	content string
	dir     bool
}

// createTestTarGz builds a .tar.gz archive in memory, preserving entry order.
func createTestTarGz(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, e := range entries {
		header := &tar.Header{
			Name:     e.name,
			Mode:     0755,
			Size:     int64(len(e.content)),
			Typeflag: tar.TypeReg,
		}
		if e.dir {
			header.Typeflag = tar.TypeDir
			header.Size = 0
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			t.Fatalf("failed to write header for %s: %v", e.name, err)
		}
		if e.dir {
			continue
		}
		if _, err := tarWriter.Write([]byte(e.content)); err != nil {
			t.Fatalf("failed to write content for %s: %v", e.name, err)
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

// createTestZip builds a .zip archive in memory, preserving entry order.
func createTestZip(t *testing.T, entries []archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, e := range entries {
		name := e.name
		if e.dir {
			name += "/"
		}
		w, err := zipWriter.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if e.dir {
			continue
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("failed to write content for %s: %v", name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// newTestEntity generates a throwaway signing key.
func newTestEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("Release Bot", "test", "release@example.com", nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return entity
}

// armoredPublicKey exports the public half of entity.
func armoredPublicKey(t *testing.T, entity *openpgp.Entity) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("failed to create armor encoder: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("failed to serialize public key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close armor encoder: %v", err)
	}
	return buf.Bytes()
}

// signDetached returns an armored detached signature over message.
func signDetached(t *testing.T, entity *openpgp.Entity, message []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, entity, bytes.NewReader(message), nil); err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	return buf.Bytes()
}
