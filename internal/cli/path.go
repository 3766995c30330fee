package cli

import (
	"fmt"

	"github.com/ksyq12/selenium-install/internal/locate"
	"github.com/ksyq12/selenium-install/internal/logger"
	"github.com/ksyq12/selenium-install/internal/output"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <standalone|driver>",
	Short: "Print the path of an installed artifact",
	Long: `Print the path of an artifact installed by a previous run.

standalone  the selenium-server-standalone file in the install directory
driver      the chromedriver executable next to it

The driver path is derived from the standalone artifact. When that is missing
the path is still printed, with a warning on stderr, but may not exist.

Examples:
  selenium-install path standalone
  selenium-install path driver --platform windows
  selenium-install path driver --json`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"standalone", "driver"},
	RunE:      runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

type pathResult struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
}

func runPath(cmd *cobra.Command, args []string) error {
	p, setup, err := resolveSetup()
	if err != nil {
		return err
	}
	resolver := locate.NewResolver(setup.InstallDir, p)

	result := pathResult{Artifact: args[0]}
	switch args[0] {
	case "standalone":
		if result.Path, err = resolver.StandalonePath(); err != nil {
			return err
		}
		result.Exists = true
	case "driver":
		result.Path, err = resolver.DriverPath()
		result.Exists = err == nil
		if err != nil {
			logger.Warn("%v; driver path may not exist", err)
		}
	default:
		return fmt.Errorf("unknown artifact %q", args[0])
	}

	if jsonOutput {
		return output.JSON(result)
	}
	output.Print("%s", result.Path)
	return nil
}
