package cli

import (
	"github.com/ksyq12/selenium-install/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration an install would run with, after merging the
built-in defaults, the platform defaults and the config file.

Examples:
  selenium-install config
  selenium-install config --platform windows
  selenium-install config --json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

type configView struct {
	Platform       string            `json:"platform"`
	ManagerPath    string            `json:"manager_path"`
	InstallDir     string            `json:"install_dir"`
	ManagerTimeout string            `json:"manager_timeout"`
	Downloads      map[string]string `json:"downloads"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	p, setup, err := resolveSetup()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(configView{
			Platform:       p.String(),
			ManagerPath:    setup.ManagerPath,
			InstallDir:     setup.InstallDir,
			ManagerTimeout: setup.ManagerTimeout.String(),
			Downloads:      setup.Downloads(),
		})
	}
	return output.YAML(setup)
}
