package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInstallError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *InstallError
		expected string
	}{
		{
			name: "message only",
			err: &InstallError{
				Code:    ErrCodeConfig,
				Message: "selenium download URL is not configured",
			},
			expected: "selenium download URL is not configured",
		},
		{
			name: "with step",
			err: &InstallError{
				Code:    ErrCodeNotFound,
				Step:    "download-selenium",
				Message: "artifact not found",
			},
			expected: "step download-selenium: artifact not found",
		},
		{
			name: "with underlying error",
			err: &InstallError{
				Code:    ErrCodeFilesystem,
				Message: "failed to create install directory",
				Err:     fmt.Errorf("permission denied"),
			},
			expected: "failed to create install directory: permission denied",
		},
		{
			name: "underlying error without message",
			err: &InstallError{
				Code: ErrCodeInternal,
				Step: "download-ie-driver",
				Err:  fmt.Errorf("boom"),
			},
			expected: "step download-ie-driver: boom",
		},
		{
			name: "with captured stderr",
			err: &InstallError{
				Code:     ErrCodeProcessExit,
				Step:     "webdriver-manager-update",
				Message:  "webdriver-manager exited with code 1",
				ExitCode: 1,
				Stderr:   "boom\n",
			},
			expected: "step webdriver-manager-update: webdriver-manager exited with code 1 (stderr: boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestInstallError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &InstallError{
		Code:    ErrCodeNetwork,
		Message: "wrapped error",
		Err:     underlying,
	}

	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() did not return underlying error")
	}

	errNoWrap := &InstallError{
		Code:    ErrCodeConfig,
		Message: "no underlying",
	}

	if errNoWrap.Unwrap() != nil {
		t.Errorf("Unwrap() should return nil when no underlying error")
	}
}

func TestInstallError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *InstallError
		target   error
		expected bool
	}{
		{
			name:     "matches sentinel error",
			err:      &InstallError{Code: ErrCodeNetwork, Message: "custom message"},
			target:   ErrNetwork,
			expected: true,
		},
		{
			name:     "different code",
			err:      &InstallError{Code: ErrCodeNetwork},
			target:   ErrExtract,
			expected: false,
		},
		{
			name:     "non-InstallError target",
			err:      &InstallError{Code: ErrCodeNetwork},
			target:   fmt.Errorf("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Is(tt.err, tt.target) != tt.expected {
				t.Errorf("Is() = %v, want %v", !tt.expected, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("cause")

	tests := []struct {
		name     string
		err      error
		sentinel *InstallError
		code     ErrorCode
	}{
		{"Filesystem", Filesystem("mkdir", cause), ErrFilesystem, ErrCodeFilesystem},
		{"Network", Network("get", cause), ErrNetwork, ErrCodeNetwork},
		{"Extract", Extract("unzip", cause), ErrExtract, ErrCodeExtract},
		{"Config", Config("bad"), ErrConfigInvalid, ErrCodeConfig},
		{"NotFound", NotFound("missing"), ErrArtifactNotFound, ErrCodeNotFound},
		{"ProcessSpawn", ProcessSpawn("/bin/wdm", cause), ErrProcessSpawn, ErrCodeProcessSpawn},
		{"ProcessExit", ProcessExit("/bin/wdm", 2, "", ""), ErrProcessExit, ErrCodeProcessExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ie *InstallError
			if !errors.As(tt.err, &ie) {
				t.Fatalf("%s() should return *InstallError", tt.name)
			}
			if ie.Code != tt.code {
				t.Errorf("Code = %v, want %v", ie.Code, tt.code)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%s() should match its sentinel", tt.name)
			}
		})
	}
}

func TestProcessExit(t *testing.T) {
	err := ProcessExit("webdriver-manager", 1, "partial output", "boom")

	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatal("ProcessExit() should return *InstallError")
	}
	if ie.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ie.ExitCode)
	}
	if ie.Stdout != "partial output" {
		t.Errorf("Stdout = %q, want %q", ie.Stdout, "partial output")
	}

	msg := err.Error()
	if !strings.Contains(msg, "code 1") {
		t.Errorf("error %q should contain the exit code", msg)
	}
	if !strings.Contains(msg, "boom") {
		t.Errorf("error %q should contain captured stderr", msg)
	}
}

func TestAtStep(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if AtStep("x", nil) != nil {
			t.Error("AtStep(nil) should be nil")
		}
	})

	t.Run("stamps typed error", func(t *testing.T) {
		orig := Network("get failed", fmt.Errorf("refused"))
		err := AtStep("download-selenium", orig)

		var ie *InstallError
		if !errors.As(err, &ie) {
			t.Fatal("expected *InstallError")
		}
		if ie.Step != "download-selenium" {
			t.Errorf("Step = %q, want download-selenium", ie.Step)
		}
		if ie.Code != ErrCodeNetwork {
			t.Errorf("Code = %v, want %v", ie.Code, ErrCodeNetwork)
		}

		var origIE *InstallError
		_ = errors.As(orig, &origIE)
		if origIE.Step != "" {
			t.Error("AtStep should not mutate the original error")
		}
	})

	t.Run("keeps existing step", func(t *testing.T) {
		err := AtStep("outer", &InstallError{Code: ErrCodeExtract, Step: "inner"})
		var ie *InstallError
		_ = errors.As(err, &ie)
		if ie.Step != "inner" {
			t.Errorf("Step = %q, want inner", ie.Step)
		}
	})

	t.Run("keeps outer context of wrapped typed error", func(t *testing.T) {
		inner := ProcessExit("webdriver-manager", 1, "", "boom")
		err := AtStep("webdriver-manager-update", fmt.Errorf("updating drivers: %w", inner))

		msg := err.Error()
		if !strings.Contains(msg, "updating drivers") {
			t.Errorf("outer context lost: %q", msg)
		}
		if !strings.HasPrefix(msg, "step webdriver-manager-update: ") {
			t.Errorf("step missing: %q", msg)
		}
		if strings.Count(msg, "boom") != 1 {
			t.Errorf("stderr should appear once: %q", msg)
		}

		var ie *InstallError
		if !errors.As(err, &ie) {
			t.Fatal("expected *InstallError")
		}
		if ie.Step != "webdriver-manager-update" || ie.Code != ErrCodeProcessExit {
			t.Errorf("got step %q code %v", ie.Step, ie.Code)
		}
		if ie.ExitCode != 1 || ie.Stderr != "boom" {
			t.Errorf("process details not carried: exit %d stderr %q", ie.ExitCode, ie.Stderr)
		}
		if !errors.Is(err, ErrProcessExit) {
			t.Error("expected PROCESS_EXIT in chain")
		}
	})

	t.Run("wraps plain error", func(t *testing.T) {
		plain := fmt.Errorf("plain")
		err := AtStep("create-install-dir", plain)
		if CodeOf(err) != ErrCodeInternal {
			t.Errorf("CodeOf = %v, want %v", CodeOf(err), ErrCodeInternal)
		}
		if !errors.Is(err, plain) {
			t.Error("wrapped error should keep the plain error in its chain")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		err := AtStep("download-selenium", context.Canceled)
		if !errors.Is(err, ErrCanceled) {
			t.Errorf("expected CANCELED, got %v", CodeOf(err))
		}
	})
}

func TestCodeOf(t *testing.T) {
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("CodeOf(plain error) should be empty")
	}
	wrapped := fmt.Errorf("outer: %w", Extract("bad zip", nil))
	if CodeOf(wrapped) != ErrCodeExtract {
		t.Errorf("CodeOf = %v, want %v", CodeOf(wrapped), ErrCodeExtract)
	}
}
