package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/logger"
)

// Extractor downloads zip archives and expands them in place.
type Extractor struct {
	downloader Downloader
}

// NewExtractor creates an Extractor that fetches through d.
func NewExtractor(d Downloader) *Extractor {
	return &Extractor{downloader: d}
}

// FetchAndExtract downloads rawURL into dir and expands the archive into dir.
// A fetch failure is returned as is and nothing is extracted.
func (e *Extractor) FetchAndExtract(ctx context.Context, rawURL, dir string) error {
	archive, err := e.downloader.Fetch(ctx, rawURL, dir)
	if err != nil {
		return err
	}

	files, err := Unzip(archive, dir)
	if err != nil {
		return err
	}

	logger.InfoFields("archive extracted", logger.Fields{
		"url":     rawURL,
		"dir":     dir,
		"entries": len(files),
	})
	return nil
}

// Unzip expands archive into dir and returns the paths of the files written.
// Entries that would land outside dir are rejected.
func Unzip(archive, dir string) ([]string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, ierrors.Extract("failed to open "+archive, err)
	}
	defer func() { _ = r.Close() }()

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, ierrors.Extract("failed to resolve "+dir, err)
	}

	var written []string
	for _, f := range r.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return written, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return written, ierrors.Extract("failed to create "+target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, ierrors.Extract("failed to create "+filepath.Dir(target), err)
		}
		if err := writeEntry(f, target); err != nil {
			return written, ierrors.Extract("failed to extract "+f.Name, err)
		}
		written = append(written, target)
	}

	return written, nil
}

func entryPath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", ierrors.Extract(fmt.Sprintf("archive entry %q escapes %s", name, root), nil)
	}
	return target, nil
}

func writeEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
