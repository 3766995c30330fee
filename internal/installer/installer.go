// Package installer drives one selenium-install run: it resolves the setup,
// picks the pipeline for the platform and reports how the run ended.
package installer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ksyq12/selenium-install/internal/config"
	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/executor"
	"github.com/ksyq12/selenium-install/internal/fetch"
	"github.com/ksyq12/selenium-install/internal/logger"
	"github.com/ksyq12/selenium-install/internal/manager"
	"github.com/ksyq12/selenium-install/internal/pipeline"
	"github.com/ksyq12/selenium-install/internal/platform"
)

// Result is the terminal outcome of one run.
type Result struct {
	RunID    string
	Platform platform.Platform
	Setup    config.Setup
	Err      error
}

// Installer is the entry point for install runs. It holds no per-run state,
// but runs sharing an install directory must not overlap.
type Installer struct {
	platform  platform.Platform
	client    *http.Client
	exec      executor.CommandExecutor
	observers []pipeline.Observer
}

// Option configures an Installer.
type Option func(*Installer)

// WithPlatform overrides platform detection.
func WithPlatform(p platform.Platform) Option {
	return func(i *Installer) {
		i.platform = p
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Installer) {
		i.client = c
	}
}

// WithExecutor sets the executor used to run the version manager.
func WithExecutor(e executor.CommandExecutor) Option {
	return func(i *Installer) {
		i.exec = e
	}
}

// WithObserver registers o on every pipeline the Installer runs.
func WithObserver(o pipeline.Observer) Option {
	return func(i *Installer) {
		i.observers = append(i.observers, o)
	}
}

// New creates an Installer for the detected platform.
func New(opts ...Option) *Installer {
	i := &Installer{platform: platform.Detect()}
	for _, opt := range opts {
		opt(i)
	}
	if i.exec == nil {
		i.exec = executor.NewSystemExecutor()
	}
	return i
}

// Platform returns the platform the Installer dispatches on.
func (i *Installer) Platform() platform.Platform {
	return i.platform
}

// Install runs the install and blocks until it ends.
func (i *Installer) Install(ctx context.Context, layers ...config.Overrides) error {
	return i.run(ctx, layers).Err
}

// Start runs the install on its own goroutine. The channel yields exactly
// one Result and is then closed.
func (i *Installer) Start(ctx context.Context, layers ...config.Overrides) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- i.run(ctx, layers)
	}()
	return ch
}

// Pipeline returns the pipeline that would run for setup.
func (i *Installer) Pipeline(setup config.Setup, opts ...pipeline.Option) *pipeline.Pipeline {
	for _, o := range i.observers {
		opts = append(opts, pipeline.WithObserver(o))
	}

	switch i.platform {
	case platform.Windows:
		f := fetch.NewFetcher(i.client)
		return WindowsPipeline(setup, f, fetch.NewExtractor(f), opts...)
	default:
		m := manager.New(setup.ManagerPath, i.exec, setup.ManagerTimeout)
		return UnixPipeline(setup, m, opts...)
	}
}

func (i *Installer) run(ctx context.Context, layers []config.Overrides) (res Result) {
	res = Result{RunID: uuid.NewString(), Platform: i.platform}
	log := logger.With(logger.Fields{"run_id": res.RunID, "platform": i.platform})

	defer func() {
		if r := recover(); r != nil {
			res.Err = ierrors.Wrap(ierrors.ErrCodeInternal, fmt.Sprintf("install panicked: %v", r), nil)
			log.Error("%v", res.Err)
		}
	}()

	setup, err := config.Resolve(i.platform, layers...)
	if err != nil {
		res.Err = ierrors.Wrap(ierrors.ErrCodeConfig, "invalid configuration", err)
		log.Error("%v", res.Err)
		return res
	}
	res.Setup = setup

	log.With(logger.Fields{
		"manager_path": setup.ManagerPath,
		"install_dir":  setup.InstallDir,
		"downloads":    len(setup.Downloads()),
	}).Info("install setup resolved")

	p := i.Pipeline(setup, pipeline.WithLogger(log))
	if err := p.Run(ctx); err != nil {
		res.Err = err
		reportFailure(log, err)
		return res
	}

	log.Info("selenium installed into %s", setup.InstallDir)
	return res
}

func reportFailure(log *logger.Entry, err error) {
	var ie *ierrors.InstallError
	if !ierrors.As(err, &ie) {
		log.Error("install failed: %v", err)
		return
	}

	fields := logger.Fields{"code": ie.Code, "step": ie.Step}
	if ie.Code == ierrors.ErrCodeProcessExit {
		fields["exit_code"] = ie.ExitCode
		log.With(fields).Error("install failed:\nstdout:\n%s\nstderr:\n%s",
			strings.TrimSpace(ie.Stdout), strings.TrimSpace(ie.Stderr))
		return
	}
	log.With(fields).Error("install failed: %v", err)
}
