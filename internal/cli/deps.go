package cli

import (
	"context"

	"github.com/ksyq12/selenium-install/internal/config"
	"github.com/ksyq12/selenium-install/internal/executor"
	"github.com/ksyq12/selenium-install/internal/installer"
	"github.com/ksyq12/selenium-install/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	InstallerFactory InstallerFactory
	Executor         executor.CommandExecutor
}

// ConfigLoader reads the configuration file layer
type ConfigLoader interface {
	Load(path string) (config.Overrides, error)
}

// PlatformDetector reports the host platform
type PlatformDetector interface {
	Detect() platform.Platform
}

// Installer runs one install in the background
type Installer interface {
	Start(ctx context.Context, layers ...config.Overrides) <-chan installer.Result
}

// InstallerFactory creates installers for a platform
type InstallerFactory interface {
	Create(p platform.Platform) Installer
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	PlatformDetector: &realPlatformDetector{},
	InstallerFactory: &realInstallerFactory{},
	Executor:         executor.NewSystemExecutor(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (config.Overrides, error) {
	return config.Load(path)
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) Detect() platform.Platform {
	return platform.Detect()
}

type realInstallerFactory struct{}

func (r *realInstallerFactory) Create(p platform.Platform) Installer {
	return installer.New(installer.WithPlatform(p), installer.WithExecutor(deps.Executor))
}
