package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ksyq12/selenium-install/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput   bool
	verbose      bool
	configFile   string
	platformName string
	installDir   string
	version      = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "selenium-install",
	Short: "Install the Selenium standalone server and browser drivers",
	Long: `selenium-install downloads the Selenium standalone server and browser
drivers into a local directory.

On Windows the artifacts are fetched directly from fixed URLs. Everywhere
else the install is delegated to protractor's webdriver-manager.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/selenium-install/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&platformName, "platform", "", "Platform to act for: windows or unix (default: detected)")
	rootCmd.PersistentFlags().StringVar(&installDir, "install-dir", "", "Directory artifacts are installed into")
}
