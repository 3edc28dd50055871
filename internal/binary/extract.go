package binary

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/centy-io/centy-installer/internal/platform"
	"github.com/centy-io/centy-installer/internal/release"
)

// Extract returns the centy-daemon executable embedded in archive.
func Extract(archive []byte, format platform.ArchiveFormat) ([]byte, error) {
	switch format {
	case platform.ArchiveTarGz:
		return extractTarGz(archive)
	case platform.ArchiveZip:
		return extractZip(archive)
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
}

// extractTarGz streams entries in archive order and returns the first regular
// file whose base name is the executable name. Directory prefixes are ignored.
func extractTarGz(archive []byte) ([]byte, error) {
	gzipReader, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, &ArchiveReadError{Format: platform.ArchiveTarGz, Err: fmt.Errorf("create gzip reader: %w", err)}
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return nil, &BinaryNotFoundError{Name: release.ProductName}
		}
		if err != nil {
			return nil, &ArchiveReadError{Format: platform.ArchiveTarGz, Err: fmt.Errorf("read tar header: %w", err)}
		}

		if header.Typeflag != tar.TypeReg || path.Base(header.Name) != release.ProductName {
			continue
		}

		data, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, &ArchiveReadError{Format: platform.ArchiveTarGz, Err: fmt.Errorf("read %s: %w", header.Name, err)}
		}
		return data, nil
	}
}

// extractZip walks the central directory in index order and returns the first
// file named centy-daemon or centy-daemon.exe.
func extractZip(archive []byte) ([]byte, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil && zipReader == nil {
		return nil, &ArchiveReadError{Format: platform.ArchiveZip, Err: err}
	}

	exeName := release.ProductName + ".exe"
	for _, f := range zipReader.File {
		if f.FileInfo().IsDir() || !isLocalEntry(f.Name) {
			continue
		}

		base := path.Base(strings.ReplaceAll(f.Name, `\`, "/"))
		if base != release.ProductName && base != exeName {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, &ArchiveReadError{Format: platform.ArchiveZip, Err: fmt.Errorf("open %s: %w", f.Name, err)}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ArchiveReadError{Format: platform.ArchiveZip, Err: fmt.Errorf("read %s: %w", f.Name, err)}
		}
		return data, nil
	}

	return nil, &BinaryNotFoundError{Name: release.ProductName}
}

// isLocalEntry reports whether an archive entry name stays inside the archive
// root: not absolute, no volume, no ".." element.
func isLocalEntry(name string) bool {
	name = strings.ReplaceAll(name, `\`, "/")
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, ":") {
		return false
	}
	for _, elem := range strings.Split(name, "/") {
		if elem == ".." {
			return false
		}
	}
	return true
}
