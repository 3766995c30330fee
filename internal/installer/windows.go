package installer

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/ksyq12/selenium-install/internal/config"
	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/fetch"
	"github.com/ksyq12/selenium-install/internal/pipeline"
)

// Step names, as they appear in logs and errors.
const (
	StepCreateInstallDir     = "create-install-dir"
	StepDownloadSelenium     = "download-selenium"
	StepDownloadChromeDriver = "download-chrome-driver"
	StepDownloadIEDriver     = "download-ie-driver"
	StepManagerUpdate        = "webdriver-manager-update"
)

// ArchiveExtractor fetches an archive into a directory and expands it there.
type ArchiveExtractor interface {
	FetchAndExtract(ctx context.Context, rawURL, dir string) error
}

// WindowsPipeline builds the direct-download pipeline: create the install
// directory, fetch the standalone server, then fetch and extract whichever
// driver archives are configured.
func WindowsPipeline(setup config.Setup, d fetch.Downloader, x ArchiveExtractor, opts ...pipeline.Option) *pipeline.Pipeline {
	dir := setup.InstallDir

	return pipeline.New("windows", []pipeline.Step{
		{
			Name: StepCreateInstallDir,
			Run: func(ctx context.Context) error {
				return ensureDir(dir)
			},
		},
		{
			Name: StepDownloadSelenium,
			Run: func(ctx context.Context) error {
				url := setup.URL(config.DownloadSelenium)
				if url == "" {
					return ierrors.Config("no download URL configured for " + config.DownloadSelenium)
				}
				_, err := d.Fetch(ctx, url, dir)
				return err
			},
		},
		driverStep(StepDownloadChromeDriver, setup.URL(config.DownloadChromeDriver), dir, x),
		driverStep(StepDownloadIEDriver, setup.URL(config.DownloadIEDriver), dir, x),
	}, opts...)
}

func driverStep(name, url, dir string, x ArchiveExtractor) pipeline.Step {
	return pipeline.Step{
		Name: name,
		When: func() bool { return url != "" },
		Run: func(ctx context.Context) error {
			return x.FetchAndExtract(ctx, url, dir)
		},
	}
}

// ensureDir creates dir; an existing entry at dir counts as success.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0o755)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}
	return ierrors.Filesystem("failed to create install directory "+dir, err)
}
