// Package errors provides the typed error taxonomy for selenium-install.
//
// Every failure an install run can produce is an *InstallError carrying a
// Code that says what kind of failure it was and, once the pipeline has seen
// it, the Step that produced it. Callers branch on the code with errors.Is
// against the sentinels below, or pull the full record out with errors.As.
//
// # Codes
//
//   - FILESYSTEM: install directory or artifact could not be written
//   - NETWORK: download failed (transport error or non-2xx response)
//   - EXTRACT: a driver archive could not be expanded
//   - PROCESS_SPAWN: the version manager could not be started
//   - PROCESS_EXIT: the version manager exited non-zero (or timed out)
//   - CONFIG: the resolved setup is unusable
//   - NOT_FOUND: an installed artifact could not be located
//   - CANCELED: the run's context was canceled between steps
//   - INTERNAL: anything else
//
// # Usage
//
//	if errors.Is(err, errors.ErrProcessExit) {
//	    var ie *errors.InstallError
//	    errors.As(err, &ie)
//	    fmt.Println(ie.ExitCode, ie.Stderr)
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different failure categories.
const (
	ErrCodeFilesystem   ErrorCode = "FILESYSTEM"
	ErrCodeNetwork      ErrorCode = "NETWORK"
	ErrCodeExtract      ErrorCode = "EXTRACT"
	ErrCodeProcessSpawn ErrorCode = "PROCESS_SPAWN"
	ErrCodeProcessExit  ErrorCode = "PROCESS_EXIT"
	ErrCodeConfig       ErrorCode = "CONFIG"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeCanceled     ErrorCode = "CANCELED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// InstallError is a failure of one install operation.
type InstallError struct {
	Code    ErrorCode // Failure category
	Step    string    // Pipeline step that failed (if known)
	Message string    // Human-readable message
	Err     error     // Underlying error (if any)

	// Populated for PROCESS_EXIT only.
	ExitCode int
	Stdout   string
	Stderr   string
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	var b strings.Builder
	if e.Step != "" {
		fmt.Fprintf(&b, "step %s: ", e.Step)
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" && (e.Err == nil || !strings.Contains(e.Err.Error(), stderr)) {
		fmt.Fprintf(&b, " (stderr: %s)", stderr)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain traversal.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *InstallError) Is(target error) bool {
	t, ok := target.(*InstallError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, one per code. Use with errors.Is.
var (
	ErrFilesystem       = &InstallError{Code: ErrCodeFilesystem, Message: "filesystem error"}
	ErrNetwork          = &InstallError{Code: ErrCodeNetwork, Message: "download failed"}
	ErrExtract          = &InstallError{Code: ErrCodeExtract, Message: "archive extraction failed"}
	ErrProcessSpawn     = &InstallError{Code: ErrCodeProcessSpawn, Message: "could not start process"}
	ErrProcessExit      = &InstallError{Code: ErrCodeProcessExit, Message: "process exited with non-zero status"}
	ErrConfigInvalid    = &InstallError{Code: ErrCodeConfig, Message: "invalid configuration"}
	ErrArtifactNotFound = &InstallError{Code: ErrCodeNotFound, Message: "artifact not found"}
	ErrCanceled         = &InstallError{Code: ErrCodeCanceled, Message: "install canceled"}
	ErrInternal         = &InstallError{Code: ErrCodeInternal, Message: "internal error"}
)

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &InstallError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Filesystem wraps a failure to create or write something on disk.
func Filesystem(msg string, err error) error {
	return Wrap(ErrCodeFilesystem, msg, err)
}

// Network wraps a download failure.
func Network(msg string, err error) error {
	return Wrap(ErrCodeNetwork, msg, err)
}

// Extract wraps an archive expansion failure.
func Extract(msg string, err error) error {
	return Wrap(ErrCodeExtract, msg, err)
}

// Config creates a configuration error with a custom message.
func Config(msg string) error {
	return &InstallError{Code: ErrCodeConfig, Message: msg}
}

// NotFound creates a lookup failure for an installed artifact.
func NotFound(msg string) error {
	return &InstallError{Code: ErrCodeNotFound, Message: msg}
}

// ProcessSpawn reports that the executable at path could not be started.
func ProcessSpawn(path string, err error) error {
	return &InstallError{
		Code:    ErrCodeProcessSpawn,
		Message: fmt.Sprintf("failed to start %s", path),
		Err:     err,
	}
}

// ProcessExit reports that the executable at path ran and exited with code.
// Both captured streams are kept for diagnostics.
func ProcessExit(path string, code int, stdout, stderr string) error {
	return &InstallError{
		Code:     ErrCodeProcessExit,
		Message:  fmt.Sprintf("%s exited with code %d", path, code),
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// AtStep attributes err to the named pipeline step. An *InstallError that
// already names a step is returned unchanged. When the *InstallError sits
// under other wrapping, the result keeps err whole as its cause so no context
// is lost. Any other error is wrapped as INTERNAL or CANCELED.
func AtStep(step string, err error) error {
	if err == nil {
		return nil
	}

	var ie *InstallError
	if errors.As(err, &ie) {
		if ie.Step != "" {
			return err
		}
		if direct, ok := err.(*InstallError); ok {
			stamped := *direct
			stamped.Step = step
			return &stamped
		}
		return &InstallError{
			Code:     ie.Code,
			Step:     step,
			Err:      err,
			ExitCode: ie.ExitCode,
			Stdout:   ie.Stdout,
			Stderr:   ie.Stderr,
		}
	}

	code := ErrCodeInternal
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeCanceled
	}
	return &InstallError{Code: code, Step: step, Err: err}
}

// CodeOf returns the code of the first *InstallError in err's chain,
// or the empty code if there is none.
func CodeOf(err error) ErrorCode {
	var ie *InstallError
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
