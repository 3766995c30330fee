package installer

import (
	"context"

	"github.com/ksyq12/selenium-install/internal/config"
	"github.com/ksyq12/selenium-install/internal/pipeline"
)

// Updater installs everything into a directory in one go.
type Updater interface {
	Update(ctx context.Context, outDir string) error
}

// UnixPipeline builds the single-step pipeline that hands the whole install
// to the version manager.
func UnixPipeline(setup config.Setup, u Updater, opts ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New("unix", []pipeline.Step{
		{
			Name: StepManagerUpdate,
			Run: func(ctx context.Context) error {
				return u.Update(ctx, setup.InstallDir)
			},
		},
	}, opts...)
}
