package cli

import (
	"fmt"

	"github.com/ksyq12/selenium-install/internal/config"
	"github.com/ksyq12/selenium-install/internal/output"
	"github.com/ksyq12/selenium-install/internal/platform"
)

// targetPlatform returns the --platform value, or the detected platform
func targetPlatform() (platform.Platform, error) {
	if platformName == "" {
		return deps.PlatformDetector.Detect(), nil
	}
	return platform.Parse(platformName)
}

// loadLayers returns the config file layer followed by flags, lowest
// precedence first
func loadLayers(flags config.Overrides) ([]config.Overrides, error) {
	file, err := deps.ConfigLoader.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if installDir != "" {
		flags.InstallDir = installDir
	}
	return []config.Overrides{file, flags}, nil
}

// resolveSetup resolves the setup for commands that only read it
func resolveSetup() (platform.Platform, config.Setup, error) {
	p, err := targetPlatform()
	if err != nil {
		return p, config.Setup{}, err
	}
	layers, err := loadLayers(config.Overrides{})
	if err != nil {
		return p, config.Setup{}, err
	}
	setup, err := config.Resolve(p, layers...)
	if err != nil {
		return p, config.Setup{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, setup, nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}
