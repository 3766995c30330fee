package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ksyq12/selenium-install/internal/config"
	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/output"
	"github.com/spf13/cobra"
)

var (
	installManagerPath string
	installDownloads   []string
	installTimeout     time.Duration
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the standalone server and drivers",
	Long: `Install the Selenium standalone server and browser drivers.

On Windows the standalone server jar is downloaded and the configured driver
archives are fetched and extracted into the install directory. Artifacts that
already exist are not downloaded again. On other platforms webdriver-manager
is run with "update --out_dir <install-dir>".

Downloads are given as name=url. Known names are selenium, chromeDriver and
ieDriver. An empty url disables that download.

Examples:
  selenium-install install
  selenium-install install --install-dir ./drivers
  selenium-install install --platform windows --download ieDriver=
  selenium-install install --manager-path ./bin/webdriver-manager --manager-timeout 5m`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installManagerPath, "manager-path", "", "Path to the webdriver-manager executable")
	installCmd.Flags().StringArrayVar(&installDownloads, "download", nil, "Download URL as name=url (repeatable)")
	installCmd.Flags().DurationVar(&installTimeout, "manager-timeout", 0, "Time limit for webdriver-manager (0 disables)")
	rootCmd.AddCommand(installCmd)
}

type installResult struct {
	RunID      string            `json:"run_id"`
	Platform   string            `json:"platform"`
	InstallDir string            `json:"install_dir"`
	Downloads  map[string]string `json:"downloads,omitempty"`
	Success    bool              `json:"success"`
	Code       string            `json:"code,omitempty"`
	Step       string            `json:"step,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func runInstall(cmd *cobra.Command, args []string) error {
	p, err := targetPlatform()
	if err != nil {
		return err
	}

	flags := config.Overrides{ManagerPath: installManagerPath}
	if flags.Downloads, err = parseDownloads(installDownloads); err != nil {
		return err
	}
	if cmd.Flags().Changed("manager-timeout") {
		timeout := installTimeout
		flags.ManagerTimeout = &timeout
	}

	layers, err := loadLayers(flags)
	if err != nil {
		return err
	}

	if !jsonOutput {
		output.Info("Installing selenium for %s...", p)
	}
	res := <-deps.InstallerFactory.Create(p).Start(cmd.Context(), layers...)

	result := installResult{
		RunID:      res.RunID,
		Platform:   res.Platform.String(),
		InstallDir: res.Setup.InstallDir,
		Downloads:  res.Setup.Downloads(),
		Success:    res.Err == nil,
	}
	if res.Err != nil {
		var ie *ierrors.InstallError
		if ierrors.As(res.Err, &ie) {
			result.Code = string(ie.Code)
			result.Step = ie.Step
		}
		result.Error = res.Err.Error()

		if jsonOutput {
			if err := output.JSON(result); err != nil {
				return err
			}
		}
		return fmt.Errorf("install failed: %w", res.Err)
	}

	return outputResult(result, "Selenium installed into %s", result.InstallDir)
}

// parseDownloads turns name=url pairs into a download layer
func parseDownloads(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	known := []string{config.DownloadSelenium, config.DownloadChromeDriver, config.DownloadIEDriver}
	downloads := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, url, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid download %q: expected name=url", pair)
		}
		if !contains(known, name) {
			sorted := append([]string(nil), known...)
			sort.Strings(sorted)
			return nil, fmt.Errorf("unknown download %q (valid: %s)", name, strings.Join(sorted, ", "))
		}
		downloads[name] = strings.TrimSpace(url)
	}
	return downloads, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
