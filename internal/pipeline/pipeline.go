// Package pipeline runs a fixed sequence of install steps, one at a time,
// stopping at the first failure.
package pipeline

import (
	"context"
	"errors"
	"sync"

	ierrors "github.com/ksyq12/selenium-install/internal/errors"
	"github.com/ksyq12/selenium-install/internal/logger"
)

// State is the lifecycle position of a Pipeline.
type State int

const (
	Pending State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == Completed || s == Failed
}

// Step is one unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error

	// When, if set, is consulted right before the step; returning false
	// skips it and counts as success.
	When func() bool
}

// Transition is reported to observers on every state change.
type Transition struct {
	State   State
	Index   int // step index, -1 once the pipeline has finished
	Step    string
	Skipped bool
	Err     error
}

// Observer receives transitions synchronously, on the running goroutine.
type Observer func(Transition)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver registers o for every transition.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		p.observers = append(p.observers, o)
	}
}

// WithLogger replaces the log entry steps are reported on.
func WithLogger(e *logger.Entry) Option {
	return func(p *Pipeline) {
		p.log = e
	}
}

// ErrAlreadyRun is returned by Run on a pipeline that has left Pending.
var ErrAlreadyRun = errors.New("pipeline already run")

// Pipeline is an ordered list of steps that runs once.
type Pipeline struct {
	name      string
	steps     []Step
	observers []Observer
	log       *logger.Entry

	mu      sync.Mutex
	state   State
	current int
	err     error
}

// New creates a Pending pipeline.
func New(name string, steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		name:    name,
		steps:   append([]Step(nil), steps...),
		current: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.With(nil)
	}
	p.log = p.log.With(logger.Fields{"pipeline": name})
	return p
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// State returns the current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the index of the running or failed step, or -1.
func (p *Pipeline) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Err returns the terminal error of a Failed pipeline.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Run executes the steps in order. The first error, attributed to its step,
// moves the pipeline to Failed and is returned; later steps never run.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.state != Pending {
		p.mu.Unlock()
		return ErrAlreadyRun
	}
	p.state = Running
	p.mu.Unlock()

	for i, step := range p.steps {
		log := p.log.With(logger.Fields{"step": step.Name, "index": i})

		if err := ctx.Err(); err != nil {
			return p.fail(i, step.Name, err)
		}

		if step.When != nil && !step.When() {
			log.Info("step skipped")
			p.transition(Transition{State: Running, Index: i, Step: step.Name, Skipped: true})
			continue
		}

		log.Info("step started")
		p.transition(Transition{State: Running, Index: i, Step: step.Name})

		if err := step.Run(ctx); err != nil {
			return p.fail(i, step.Name, err)
		}
		log.Debug("step finished")
	}

	p.log.Info("pipeline completed")
	p.transition(Transition{State: Completed, Index: -1})
	return nil
}

func (p *Pipeline) fail(index int, name string, cause error) error {
	err := ierrors.AtStep(name, cause)
	p.log.With(logger.Fields{"step": name, "index": index, "code": ierrors.CodeOf(err)}).Error("step failed: %v", err)
	p.transition(Transition{State: Failed, Index: index, Step: name, Err: err})
	return err
}

func (p *Pipeline) transition(t Transition) {
	p.mu.Lock()
	p.state = t.State
	if t.State == Completed {
		p.current = -1
	} else {
		p.current = t.Index
	}
	if t.State == Failed {
		p.err = t.Err
	}
	observers := p.observers
	p.mu.Unlock()

	for _, o := range observers {
		o(t)
	}
}
