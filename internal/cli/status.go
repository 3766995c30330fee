package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/selenium-install/internal/config"
	"github.com/ksyq12/selenium-install/internal/locate"
	"github.com/ksyq12/selenium-install/internal/manager"
	"github.com/ksyq12/selenium-install/internal/output"
	"github.com/ksyq12/selenium-install/internal/platform"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var statusManager bool

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"doctor"},
	Short:   "Show what is installed and check prerequisites",
	Long: `Report the state of the install directory and check prerequisites.

Checks:
  - Config file presence
  - webdriver-manager availability (not on Windows)
  - Install directory and installed artifacts

With --manager, webdriver-manager is also asked for its own status.

Examples:
  selenium-install status
  selenium-install status --manager
  selenium-install status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusManager, "manager", false, "Include the output of webdriver-manager status")
	rootCmd.AddCommand(statusCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// StatusReport contains all status results
type StatusReport struct {
	Platform      string           `json:"platform"`
	Host          string           `json:"host"`
	Prerequisites []CheckResult    `json:"prerequisites"`
	Inventory     locate.Inventory `json:"inventory"`
	ManagerStatus string           `json:"manager_status,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	p, setup, err := resolveSetup()
	if err != nil {
		return err
	}

	report := &StatusReport{
		Platform:      p.String(),
		Host:          platform.Describe(),
		Prerequisites: checkPrerequisites(p, setup),
		Inventory:     locate.NewResolver(setup.InstallDir, p).Installed(),
	}

	if statusManager && p != platform.Windows {
		m := manager.New(setup.ManagerPath, deps.Executor, setup.ManagerTimeout)
		out, err := m.Status(cmd.Context(), setup.InstallDir)
		if err != nil {
			return fmt.Errorf("webdriver-manager status failed: %w", err)
		}
		report.ManagerStatus = strings.TrimSpace(out)
	}

	if jsonOutput {
		return output.JSON(report)
	}

	displayStatus(report)
	return nil
}

func checkPrerequisites(p platform.Platform, setup config.Setup) []CheckResult {
	results := []CheckResult{}

	// Config file is optional; defaults apply without it
	path, _ := homedir.Expand(configFile)
	if path == "" {
		path, _ = config.ConfigPath()
	}
	if _, err := os.Stat(path); path != "" && err == nil {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Config file exists (%s)", path),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "No config file, using defaults",
		})
	}

	if p == platform.Windows {
		for _, name := range []string{config.DownloadSelenium, config.DownloadChromeDriver, config.DownloadIEDriver} {
			if setup.URL(name) == "" {
				status := "warning"
				if name == config.DownloadSelenium {
					status = "error"
				}
				results = append(results, CheckResult{
					Status:  status,
					Message: fmt.Sprintf("No download configured for %s", name),
				})
			}
		}
		return results
	}

	m := manager.New(setup.ManagerPath, deps.Executor, 0)
	if m.Available() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("webdriver-manager found (%s)", m.Path()),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("webdriver-manager not found at %s", m.Path()),
		})
	}

	return results
}

func displayStatus(report *StatusReport) {
	output.Print("Platform: %s (host %s)", report.Platform, report.Host)
	output.Print("")

	output.Print("Checking prerequisites...")
	for _, check := range report.Prerequisites {
		displayCheck(check)
	}
	output.Print("")

	inv := report.Inventory
	output.Print("Checking %s...", inv.InstallDir)
	if !inv.DirExists {
		output.Warn("Install directory does not exist, run 'selenium-install install'")
		return
	}

	rows := make([][]string, 0, len(inv.Artifacts))
	for _, a := range inv.Artifacts {
		state := "missing"
		if a.Exists {
			state = "installed"
		}
		path := a.Path
		if path == "" {
			path = "-"
		}
		rows = append(rows, []string{a.Name, state, path})
	}
	output.Table([]string{"ARTIFACT", "STATE", "PATH"}, rows)

	if report.ManagerStatus != "" {
		output.Print("")
		output.Print("%s", report.ManagerStatus)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
