package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/selenium-install/internal/platform"
)

// Download names understood by the install pipelines.
const (
	DownloadSelenium     = "selenium"
	DownloadChromeDriver = "chromeDriver"
	DownloadIEDriver     = "ieDriver"
)

// Built-in defaults.
const (
	DefaultInstallDir     = "selenium"
	DefaultManagerTimeout = 10 * time.Minute
)

// DefaultManagerPath is the webdriver-manager shipped with protractor,
// relative to the working directory.
var DefaultManagerPath = filepath.Join("node_modules", "protractor", "bin", "webdriver-manager")

// Fixed artifact URLs used on Windows, where no version manager runs.
const (
	SeleniumURL     = "http://selenium-release.storage.googleapis.com/2.40/selenium-server-standalone-2.40.0.jar"
	IEDriverURL     = "http://selenium-release.storage.googleapis.com/2.40/IEDriverServer_Win32_2.40.0.zip"
	ChromeDriverURL = "http://chromedriver.storage.googleapis.com/2.9/chromedriver_win32.zip"
)

const configDir = ".config/selenium-install"
const configFile = "config.yaml"

// Overrides is one configuration layer. Empty fields are unset and leave the
// lower layer's value in place. Downloads merge per key; a key mapped to ""
// disables that artifact.
type Overrides struct {
	ManagerPath    string            `yaml:"manager_path,omitempty"`
	InstallDir     string            `yaml:"install_dir,omitempty"`
	Downloads      map[string]string `yaml:"downloads,omitempty"`
	ManagerTimeout *time.Duration    `yaml:"manager_timeout,omitempty"`
}

// Builtin returns the layer every invocation starts from.
func Builtin() Overrides {
	timeout := DefaultManagerTimeout
	return Overrides{
		ManagerPath:    DefaultManagerPath,
		InstallDir:     DefaultInstallDir,
		Downloads:      map[string]string{},
		ManagerTimeout: &timeout,
	}
}

// PlatformDefaults returns the layer applied on top of Builtin for p.
// Only Windows has one.
func PlatformDefaults(p platform.Platform) Overrides {
	if p != platform.Windows {
		return Overrides{}
	}
	return Overrides{
		Downloads: map[string]string{
			DownloadSelenium:     SeleniumURL,
			DownloadIEDriver:     IEDriverURL,
			DownloadChromeDriver: ChromeDriverURL,
		},
	}
}

// Setup is the resolved configuration of one install run. It is built once
// by Resolve and not modified afterwards.
type Setup struct {
	ManagerPath    string
	InstallDir     string
	ManagerTimeout time.Duration
	downloads      map[string]string
}

// URL returns the configured download URL for name, or "" if none.
func (s Setup) URL(name string) string {
	return s.downloads[name]
}

// Downloads returns a copy of the configured downloads, without disabled entries.
func (s Setup) Downloads() map[string]string {
	out := make(map[string]string, len(s.downloads))
	for k, v := range s.downloads {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// MarshalYAML renders the setup in the configuration file's shape.
func (s Setup) MarshalYAML() (interface{}, error) {
	timeout := s.ManagerTimeout
	return Overrides{
		ManagerPath:    s.ManagerPath,
		InstallDir:     s.InstallDir,
		Downloads:      s.Downloads(),
		ManagerTimeout: &timeout,
	}, nil
}

// Resolve merges Builtin, the platform layer for p, then layers in order.
func Resolve(p platform.Platform, layers ...Overrides) (Setup, error) {
	all := append([]Overrides{Builtin(), PlatformDefaults(p)}, layers...)

	setup := Setup{downloads: make(map[string]string)}
	for _, layer := range all {
		if layer.ManagerPath != "" {
			setup.ManagerPath = layer.ManagerPath
		}
		if layer.InstallDir != "" {
			setup.InstallDir = layer.InstallDir
		}
		if layer.ManagerTimeout != nil {
			setup.ManagerTimeout = *layer.ManagerTimeout
		}
		for name, url := range layer.Downloads {
			setup.downloads[name] = strings.TrimSpace(url)
		}
	}

	var err error
	if setup.ManagerPath, err = homedir.Expand(setup.ManagerPath); err != nil {
		return Setup{}, fmt.Errorf("failed to expand manager path: %w", err)
	}
	if setup.InstallDir, err = homedir.Expand(setup.InstallDir); err != nil {
		return Setup{}, fmt.Errorf("failed to expand install dir: %w", err)
	}
	if setup.ManagerTimeout < 0 {
		return Setup{}, fmt.Errorf("manager timeout must not be negative: %s", setup.ManagerTimeout)
	}

	return setup, nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the default config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads a configuration layer from path, or from ConfigPath when path
// is empty. A missing file yields an empty layer. Unknown keys are rejected.
func Load(path string) (Overrides, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return Overrides{}, err
		}
	} else {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Overrides{}, fmt.Errorf("failed to expand config path: %w", err)
		}
		path = expanded
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Overrides{}, nil
	}
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read config: %w", err)
	}

	var layer Overrides
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&layer); err != nil && !errors.Is(err, io.EOF) {
		return Overrides{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return layer, nil
}
