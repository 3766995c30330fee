package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long Run waits for the output pipes to close
// after the context has killed the process.
const DefaultWaitDelay = 2 * time.Second

// Result is the outcome of a process that was started.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// StartError is returned when the process could not be started at all.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return "start " + e.Name + ": " + e.Err.Error()
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Run starts name with args and waits for it. A non-zero exit is not an
	// error: it is reported through Result.ExitCode. The error is a
	// *StartError when the process never started, or the context's error
	// when ctx ended first.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct {
	// WaitDelay is how long Run keeps reading output once ctx has ended.
	// Children of the killed process may hold the pipes open; after the delay
	// they are closed and Run returns. Zero means DefaultWaitDelay.
	WaitDelay time.Duration
}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{WaitDelay: DefaultWaitDelay}
}

// Run executes the command, buffering stdout and stderr separately.
func (e *SystemExecutor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	if err := cmd.Start(); err != nil {
		return nil, &StartError{Name: name, Err: err}
	}

	waitErr := cmd.Wait()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return res, waitErr
	}
	return res, nil
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	RunFunc      func(ctx context.Context, name string, args ...string) (*Result, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// Run calls the mock function
func (m *MockExecutor) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return &Result{}, nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
