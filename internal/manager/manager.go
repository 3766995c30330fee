package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/executor"
	"github.com/ksyq12/selenium-install/internal/logger"
)

// Manager runs the external webdriver-manager executable.
type Manager struct {
	path    string
	exec    executor.CommandExecutor
	timeout time.Duration
}

// New creates a Manager for the executable at path. A zero timeout lets the
// process run for as long as the caller's context allows.
func New(path string, exec executor.CommandExecutor, timeout time.Duration) *Manager {
	if exec == nil {
		exec = executor.NewSystemExecutor()
	}
	return &Manager{path: path, exec: exec, timeout: timeout}
}

// Path returns the configured executable path.
func (m *Manager) Path() string {
	return m.path
}

// Available reports whether the executable can be found: either the path
// exists on disk, or it is a bare name found on PATH.
func (m *Manager) Available() bool {
	if strings.ContainsAny(m.path, `/\`) {
		_, err := os.Stat(m.path)
		return err == nil
	}
	_, err := m.exec.LookPath(m.path)
	return err == nil
}

// UpdateArgs returns the arguments Update passes to the executable.
func UpdateArgs(outDir string) []string {
	return []string{"update", "--out_dir", outDir}
}

// Update downloads the standalone server and drivers into outDir.
func (m *Manager) Update(ctx context.Context, outDir string) error {
	_, err := m.run(ctx, UpdateArgs(outDir))
	return err
}

// Status returns what the executable reports about installed versions.
func (m *Manager) Status(ctx context.Context, outDir string) (string, error) {
	res, err := m.run(ctx, []string{"status", "--out_dir", outDir})
	if err != nil {
		return "", err
	}
	return string(res.Stdout), nil
}

func (m *Manager) run(ctx context.Context, args []string) (*executor.Result, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	logger.Info("running: %s %s", m.path, strings.Join(args, " "))
	res, err := m.exec.Run(ctx, m.path, args...)

	var startErr *executor.StartError
	switch {
	case errors.As(err, &startErr):
		return nil, ierrors.ProcessSpawn(m.path, startErr.Err)
	case m.timeout > 0 && errors.Is(err, context.DeadlineExceeded):
		stdout, stderr := streams(res)
		return nil, &ierrors.InstallError{
			Code:     ierrors.ErrCodeProcessExit,
			Message:  fmt.Sprintf("%s timed out after %s", m.path, m.timeout),
			Err:      err,
			ExitCode: -1,
			Stdout:   stdout,
			Stderr:   stderr,
		}
	case err != nil:
		return nil, ierrors.Wrap(ierrors.ErrCodeCanceled, m.path+" interrupted", err)
	}

	if res.ExitCode != 0 {
		stdout, stderr := streams(res)
		logger.WarnFields("webdriver-manager failed", logger.Fields{
			"exit_code": res.ExitCode,
			"stdout":    fmt.Sprintf("%q", stdout),
			"stderr":    fmt.Sprintf("%q", stderr),
		})
		return nil, ierrors.ProcessExit(m.path, res.ExitCode, stdout, stderr)
	}
	return res, nil
}

func streams(res *executor.Result) (string, string) {
	if res == nil {
		return "", ""
	}
	return string(res.Stdout), string(res.Stderr)
}
