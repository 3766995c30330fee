package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/logger"
)

// Downloader places the resource at a URL into a directory and returns the
// local path.
type Downloader interface {
	Fetch(ctx context.Context, rawURL, dir string) (string, error)
}

// Fetcher is the HTTP Downloader.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher using client, or a client without a timeout
// when client is nil. Cancellation is left to the caller's context.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client}
}

// Destination returns the local path rawURL is stored at under dir: the last
// element of the URL path. Query and fragment are ignored.
func Destination(rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ierrors.Network("invalid download URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ierrors.Network(fmt.Sprintf("download URL %q is not absolute", rawURL), nil)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." || u.Path == "" || u.Path[len(u.Path)-1] == '/' {
		return "", ierrors.Network(fmt.Sprintf("download URL %q has no file name", rawURL), nil)
	}
	return filepath.Join(dir, name), nil
}

// Fetch downloads rawURL into dir unless dir/basename(rawURL) already exists.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dir string) (string, error) {
	dest, err := Destination(rawURL, dir)
	if err != nil {
		return "", err
	}
	log := logger.With(logger.Fields{"url": rawURL, "dest": dest})

	if _, err := os.Stat(dest); err == nil {
		log.Debug("artifact already present, skipping download")
		return dest, nil
	} else if !os.IsNotExist(err) {
		return "", ierrors.Filesystem("failed to check "+dest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", ierrors.Network("failed to build request", err)
	}

	log.Info("downloading artifact")
	resp, err := f.client.Do(req)
	if err != nil {
		return "", ierrors.Network("GET "+rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ierrors.Network(fmt.Sprintf("GET %s: unexpected status %s", rawURL, resp.Status), nil)
	}

	n, err := writeAtomic(dest, resp.Body)
	if err != nil {
		return "", err
	}

	log.With(logger.Fields{"bytes": n}).Info("artifact downloaded")
	return dest, nil
}

// writeAtomic streams body into a temporary file beside dest and renames it
// onto dest once the copy has been synced and closed.
func writeAtomic(dest string, body io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".part-*")
	if err != nil {
		return 0, ierrors.Filesystem("failed to create temporary file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	w := &writeTracker{w: tmp}
	n, err := io.Copy(w, body)
	if err != nil {
		_ = tmp.Close()
		if w.err != nil {
			return n, ierrors.Filesystem("failed to write "+tmpName, err)
		}
		return n, ierrors.Network("download interrupted", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return n, ierrors.Filesystem("failed to sync "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return n, ierrors.Filesystem("failed to close "+tmpName, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return n, ierrors.Filesystem("failed to move download into place", err)
	}
	committed = true
	return n, nil
}

// writeTracker remembers write errors so a failed copy can be blamed on the
// disk or on the network.
type writeTracker struct {
	w   io.Writer
	err error
}

func (t *writeTracker) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
