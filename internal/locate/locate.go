// Package locate finds artifacts left behind by a previous install.
package locate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/platform"
)

// StandalonePattern is the file name fragment that identifies the standalone
// server artifact.
const StandalonePattern = "selenium-server-standalone"

// DriverName is the base name of the chrome driver executable.
const DriverName = "chromedriver"

// Resolver looks up installed artifacts under InstallDir. It only reads the
// filesystem.
type Resolver struct {
	InstallDir string
	Platform   platform.Platform
}

// NewResolver creates a Resolver for dir on p.
func NewResolver(dir string, p platform.Platform) *Resolver {
	return &Resolver{InstallDir: dir, Platform: p}
}

// StandalonePath returns the first file in InstallDir, in name order, whose
// name contains StandalonePattern.
func (r *Resolver) StandalonePath() (string, error) {
	entries, err := os.ReadDir(r.InstallDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ierrors.NotFound("install directory " + r.InstallDir + " does not exist")
	}
	if err != nil {
		return "", ierrors.Filesystem("failed to read "+r.InstallDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.Contains(e.Name(), StandalonePattern) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", ierrors.NotFound("no " + StandalonePattern + " artifact in " + r.InstallDir)
	}
	sort.Strings(names)
	return filepath.Join(r.InstallDir, names[0]), nil
}

// DriverPath returns the chrome driver path next to the standalone artifact.
// When the standalone artifact cannot be found the path is derived from
// InstallDir and returned together with the lookup error; it may not exist.
func (r *Resolver) DriverPath() (string, error) {
	name := r.Platform.Executable(DriverName)

	standalone, err := r.StandalonePath()
	if err != nil {
		return filepath.Join(r.InstallDir, name), err
	}
	return filepath.Join(filepath.Dir(standalone), name), nil
}

// Artifact is one entry of an Inventory.
type Artifact struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// Inventory describes what a previous install left in a directory.
type Inventory struct {
	InstallDir string     `json:"install_dir" yaml:"install_dir"`
	DirExists  bool       `json:"dir_exists" yaml:"dir_exists"`
	Artifacts  []Artifact `json:"artifacts" yaml:"artifacts"`
}

// Complete reports whether every artifact in the inventory exists.
func (inv Inventory) Complete() bool {
	if !inv.DirExists {
		return false
	}
	for _, a := range inv.Artifacts {
		if !a.Exists {
			return false
		}
	}
	return true
}

// Installed takes stock of InstallDir.
func (r *Resolver) Installed() Inventory {
	inv := Inventory{InstallDir: r.InstallDir}
	if info, err := os.Stat(r.InstallDir); err == nil && info.IsDir() {
		inv.DirExists = true
	}

	standalone, err := r.StandalonePath()
	inv.Artifacts = append(inv.Artifacts, Artifact{
		Name:   "standalone",
		Path:   standalone,
		Exists: err == nil,
	})

	driver, _ := r.DriverPath()
	inv.Artifacts = append(inv.Artifacts, Artifact{
		Name:   "driver",
		Path:   driver,
		Exists: fileExists(driver),
	})
	return inv
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
