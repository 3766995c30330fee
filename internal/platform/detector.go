// Package platform selects which install flavour applies to the running host.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is the install flavour: Windows downloads artifacts directly,
// everything else delegates to the version manager.
type Platform int

const (
	Unix Platform = iota
	Windows
)

// String returns the platform name as accepted by Parse.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	default:
		return "unix"
	}
}

// Detect returns the platform of the running process.
func Detect() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to a Platform. Anything that is not windows
// falls through to Unix.
func FromGOOS(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Unix
}

// Parse converts a user-supplied platform name.
func Parse(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win32":
		return Windows, nil
	case "unix", "linux", "darwin":
		return Unix, nil
	default:
		return Unix, fmt.Errorf("unknown platform: %s (available: windows, unix)", name)
	}
}

// Executable returns base with the platform's executable suffix.
func (p Platform) Executable(base string) string {
	if p == Windows {
		return base + ".exe"
	}
	return base
}

// Describe returns a string describing the current host.
func Describe() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
