package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/executor"
)

func TestUpdate(t *testing.T) {
	t.Run("passes update arguments", func(t *testing.T) {
		mock := &executor.MockExecutor{}
		m := New("/opt/wdm", mock, 0)

		if err := m.Update(context.Background(), "selenium"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if len(mock.Calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(mock.Calls))
		}
		call := mock.Calls[0]
		if call.Name != "/opt/wdm" {
			t.Errorf("expected /opt/wdm, got %s", call.Name)
		}
		if strings.Join(call.Args, " ") != "update --out_dir selenium" {
			t.Errorf("unexpected args: %v", call.Args)
		}
	})

	t.Run("non-zero exit surfaces code and stderr", func(t *testing.T) {
		mock := &executor.MockExecutor{
			RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
				return &executor.Result{Stdout: []byte("downloading"), Stderr: []byte("boom"), ExitCode: 1}, nil
			},
		}
		err := New("wdm", mock, 0).Update(context.Background(), "selenium")
		if !errors.Is(err, ierrors.ErrProcessExit) {
			t.Fatalf("expected PROCESS_EXIT, got %v", err)
		}

		var ie *ierrors.InstallError
		errors.As(err, &ie)
		if ie.ExitCode != 1 {
			t.Errorf("expected exit code 1, got %d", ie.ExitCode)
		}
		if ie.Stdout != "downloading" {
			t.Errorf("expected captured stdout, got %q", ie.Stdout)
		}
		if !strings.Contains(err.Error(), "1") || !strings.Contains(err.Error(), "boom") {
			t.Errorf("error %q should contain exit code and stderr", err.Error())
		}
	})

	t.Run("spawn failure", func(t *testing.T) {
		mock := &executor.MockExecutor{
			RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
				return nil, &executor.StartError{Name: name, Err: os.ErrNotExist}
			},
		}
		err := New("missing-wdm", mock, 0).Update(context.Background(), "selenium")
		if !errors.Is(err, ierrors.ErrProcessSpawn) {
			t.Fatalf("expected PROCESS_SPAWN, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("spawn error should keep its cause")
		}
	})

	t.Run("timeout applied to context", func(t *testing.T) {
		mock := &executor.MockExecutor{
			RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
				if _, ok := ctx.Deadline(); !ok {
					t.Error("expected a deadline on the context")
				}
				<-ctx.Done()
				return &executor.Result{Stderr: []byte("still going"), ExitCode: -1}, ctx.Err()
			},
		}
		err := New("wdm", mock, 20*time.Millisecond).Update(context.Background(), "selenium")
		if !errors.Is(err, ierrors.ErrProcessExit) {
			t.Fatalf("expected PROCESS_EXIT on timeout, got %v", err)
		}
		if !strings.Contains(err.Error(), "timed out") {
			t.Errorf("expected timeout message, got %q", err.Error())
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Error("timeout error should wrap context.DeadlineExceeded")
		}
	})

	t.Run("no timeout leaves context alone", func(t *testing.T) {
		mock := &executor.MockExecutor{
			RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
				if _, ok := ctx.Deadline(); ok {
					t.Error("did not expect a deadline")
				}
				return &executor.Result{}, nil
			},
		}
		if err := New("wdm", mock, 0).Update(context.Background(), "selenium"); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	})

	t.Run("caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		mock := &executor.MockExecutor{
			RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
				return &executor.Result{ExitCode: -1}, ctx.Err()
			},
		}
		err := New("wdm", mock, 0).Update(ctx, "selenium")
		if !errors.Is(err, ierrors.ErrCanceled) {
			t.Fatalf("expected CANCELED, got %v", err)
		}
	})
}

func TestStatus(t *testing.T) {
	mock := &executor.MockExecutor{
		RunFunc: func(ctx context.Context, name string, args ...string) (*executor.Result, error) {
			if args[0] != "status" {
				t.Errorf("expected status subcommand, got %v", args)
			}
			return &executor.Result{Stdout: []byte("selenium standalone version available: 2.40.0")}, nil
		},
	}
	out, err := New("wdm", mock, 0).Status(context.Background(), "selenium")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !strings.Contains(out, "2.40.0") {
		t.Errorf("unexpected status output %q", out)
	}
}

func TestAvailable(t *testing.T) {
	t.Run("path on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "webdriver-manager")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		if !New(path, &executor.MockExecutor{}, 0).Available() {
			t.Error("expected existing path to be available")
		}
		if New(path+"-missing", &executor.MockExecutor{}, 0).Available() {
			t.Error("expected missing path to be unavailable")
		}
	})

	t.Run("bare name on PATH", func(t *testing.T) {
		mock := &executor.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				if file == "webdriver-manager" {
					return "/usr/local/bin/webdriver-manager", nil
				}
				return "", errors.New("not found")
			},
		}
		if !New("webdriver-manager", mock, 0).Available() {
			t.Error("expected webdriver-manager on PATH")
		}
		if New("other", mock, 0).Available() {
			t.Error("expected other to be unavailable")
		}
	})
}

func TestSystemExecutorIntegration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "webdriver-manager")
	body := "#!/bin/sh\necho \"args: $*\"\necho boom >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	err := New(script, nil, time.Minute).Update(context.Background(), filepath.Join(dir, "selenium"))
	var ie *ierrors.InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InstallError, got %v", err)
	}
	if ie.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", ie.ExitCode)
	}
	if strings.TrimSpace(ie.Stderr) != "boom" {
		t.Errorf("expected stderr boom, got %q", ie.Stderr)
	}
	if !strings.Contains(ie.Stdout, "update --out_dir") {
		t.Errorf("expected update args echoed, got %q", ie.Stdout)
	}
}

func TestUpdateTimeoutStopsScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "webdriver-manager")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	start := time.Now()
	err := New(script, executor.NewSystemExecutor(), 200*time.Millisecond).
		Update(context.Background(), filepath.Join(dir, "selenium"))
	elapsed := time.Since(start)

	if !errors.Is(err, ierrors.ErrProcessExit) {
		t.Fatalf("expected process exit error, got %v", err)
	}
	if !strings.Contains(err.Error(), "timed out after 200ms") {
		t.Errorf("expected timeout message, got %v", err)
	}
	if elapsed > 10*time.Second {
		t.Errorf("Update returned after %s, want shortly after the timeout", elapsed)
	}
}
