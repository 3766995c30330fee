package cli

import (
	"context"
	"sync"

	"github.com/ksyq12/selenium-install/internal/config"
	"github.com/ksyq12/selenium-install/internal/executor"
	"github.com/ksyq12/selenium-install/internal/installer"
	"github.com/ksyq12/selenium-install/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Layer   config.Overrides
	LoadErr error
	Paths   []string
}

func (m *MockConfigLoader) Load(path string) (config.Overrides, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return config.Overrides{}, m.LoadErr
	}
	return m.Layer, nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Platform platform.Platform
}

func (m *MockPlatformDetector) Detect() platform.Platform {
	return m.Platform
}

// MockInstaller is a test double for Installer. It resolves the setup like
// the real one and returns Err without touching the network or filesystem.
type MockInstaller struct {
	Platform platform.Platform
	Err      error

	mu     sync.Mutex
	Layers [][]config.Overrides
}

func (m *MockInstaller) Start(ctx context.Context, layers ...config.Overrides) <-chan installer.Result {
	m.mu.Lock()
	m.Layers = append(m.Layers, layers)
	m.mu.Unlock()

	ch := make(chan installer.Result, 1)
	setup, err := config.Resolve(m.Platform, layers...)
	if err == nil {
		err = m.Err
	}
	ch <- installer.Result{RunID: "test-run", Platform: m.Platform, Setup: setup, Err: err}
	close(ch)
	return ch
}

// MockInstallerFactory is a test double for InstallerFactory
type MockInstallerFactory struct {
	Err       error
	Platforms []platform.Platform
	Last      *MockInstaller
}

func (m *MockInstallerFactory) Create(p platform.Platform) Installer {
	m.Platforms = append(m.Platforms, p)
	m.Last = &MockInstaller{Platform: p, Err: m.Err}
	return m.Last
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{},
			PlatformDetector: &MockPlatformDetector{Platform: platform.Unix},
			InstallerFactory: &MockInstallerFactory{},
			Executor:         &executor.MockExecutor{},
		},
	}
}

// WithConfig sets the config file layer for the mock
func (b *MockDependenciesBuilder) WithConfig(layer config.Overrides) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Layer: layer}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithPlatform sets the detected platform
func (b *MockDependenciesBuilder) WithPlatform(p platform.Platform) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Platform: p}
	return b
}

// WithInstallerFactory sets a custom installer factory
func (b *MockDependenciesBuilder) WithInstallerFactory(factory InstallerFactory) *MockDependenciesBuilder {
	b.deps.InstallerFactory = factory
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
