package submit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/fsm"
	"github.com/dmitrymomot/authkit/pkg/notify"
	"github.com/dmitrymomot/authkit/pkg/validator"
)

// Form describes one guarded-submit flow: how to validate its input, how to
// submit it remotely, what to do on success, and how to describe a failure to
// the user.
type Form[In, Out any] interface {
	// Validate checks the input locally, collecting every violation.
	Validate(in In) error

	// Submit performs the remote call. The pipeline invokes it exactly once
	// per run, and only after validation passes.
	Submit(ctx context.Context, in In) (Out, error)

	// OnSuccess applies the success side effects. Implementations order them
	// session update, then success notice, then navigation, so the
	// destination page can read session state immediately. Returning an
	// error reclassifies the whole run as a remote failure.
	OnSuccess(ctx context.Context, out Out) error

	// FailureNotice returns the generic title and description shown when the
	// run fails remotely. The pipeline never parses server error bodies.
	FailureNotice() (title, description string)
}

// Pipeline drives a Form through the guarded-submit control flow:
// validate → submit → success effects, with field errors on local failures
// and a generic error notice on remote ones. The pipeline applies no locking
// between runs; the caller disables the submit control while a run is in
// flight.
type Pipeline[In, Out any] struct {
	form        Form[In, Out]
	notifier    notify.Notifier
	fieldErrors func(map[string]string)
	loading     func(bool)
	logger      *slog.Logger
}

// Option is a functional option for configuring a Pipeline.
type Option[In, Out any] func(*Pipeline[In, Out])

// WithNotifier sets the sink for failure notices (and any notices the form's
// success effects emit through it).
func WithNotifier[In, Out any](n notify.Notifier) Option[In, Out] {
	return func(p *Pipeline[In, Out]) {
		if n != nil {
			p.notifier = n
		}
	}
}

// WithFieldErrorSink sets the callback receiving the field→message map. It is
// called with an empty map at the start of every run to clear previously
// displayed errors.
func WithFieldErrorSink[In, Out any](sink func(map[string]string)) Option[In, Out] {
	return func(p *Pipeline[In, Out]) {
		if sink != nil {
			p.fieldErrors = sink
		}
	}
}

// WithLoadingSink sets the callback receiving the loading indicator state.
func WithLoadingSink[In, Out any](sink func(bool)) Option[In, Out] {
	return func(p *Pipeline[In, Out]) {
		if sink != nil {
			p.loading = sink
		}
	}
}

// WithLogger sets the logger for non-fatal diagnostics.
func WithLogger[In, Out any](logger *slog.Logger) Option[In, Out] {
	return func(p *Pipeline[In, Out]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a pipeline for the given form.
func New[In, Out any](form Form[In, Out], opts ...Option[In, Out]) *Pipeline[In, Out] {
	p := &Pipeline[In, Out]{
		form:        form,
		notifier:    notify.NoOpNotifier{},
		fieldErrors: func(map[string]string) {},
		loading:     func(bool) {},
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Pipeline run states and events.
const (
	stateIdle          fsm.State = "idle"
	stateValidating    fsm.State = "validating"
	stateSubmitting    fsm.State = "submitting"
	stateSucceeded     fsm.State = "succeeded"
	stateLocalInvalid  fsm.State = "local_invalid"
	stateRemoteFailed  fsm.State = "remote_failed"
	eventValidate      fsm.Event = "validate"
	eventPass          fsm.Event = "pass"
	eventRejectLocally fsm.Event = "reject_locally"
	eventSucceed       fsm.Event = "succeed"
	eventFail          fsm.Event = "fail"
)

// newRunMachine builds the legal path for a single run. Each run gets a
// fresh machine; two overlapping runs never share state.
func newRunMachine() *fsm.Machine {
	m := fsm.New(stateIdle)
	m.AddTransition(stateIdle, eventValidate, stateValidating).
		AddTransition(stateValidating, eventPass, stateSubmitting).
		AddTransition(stateValidating, eventRejectLocally, stateLocalInvalid).
		AddTransition(stateSubmitting, eventSucceed, stateSucceeded).
		AddTransition(stateSubmitting, eventFail, stateRemoteFailed)
	return m
}

// Run executes one submit against the given input and returns its terminal
// outcome. Steps execute strictly in order: validation, remote call, success
// effects. Once the remote call is issued it runs to completion; the pipeline
// enforces no timeout of its own.
func (p *Pipeline[In, Out]) Run(ctx context.Context, in In) Result[Out] {
	machine := newRunMachine()
	must(machine.Fire(eventValidate))

	// Previously displayed errors clear before the new validation pass.
	p.fieldErrors(map[string]string{})

	if err := p.form.Validate(in); err != nil {
		must(machine.Fire(eventRejectLocally))

		fieldErrors := validator.ExtractValidationErrors(err).FieldMap()
		p.fieldErrors(fieldErrors)
		// Field-scoped failures render inline only; no notice is emitted.
		return localInvalid[Out](fieldErrors)
	}

	must(machine.Fire(eventPass))
	p.loading(true)
	defer p.loading(false)

	out, err := p.form.Submit(ctx, in)
	if err != nil {
		must(machine.Fire(eventFail))
		p.notifyFailure(ctx, err)
		return remoteFailed[Out](err)
	}

	if err := p.applySuccess(ctx, out); err != nil {
		// An effect failing after a successful remote call presents exactly
		// like a remote failure: error notice, no navigation.
		must(machine.Fire(eventFail))
		p.notifyFailure(ctx, err)
		return remoteFailed[Out](err)
	}

	must(machine.Fire(eventSucceed))
	return succeeded(out)
}

// applySuccess runs the form's success effects, converting a panic in a
// downstream consumer into an ordinary error.
func (p *Pipeline[In, Out]) applySuccess(ctx context.Context, out Out) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submit: success effect panicked: %v", r)
		}
	}()

	return p.form.OnSuccess(ctx, out)
}

func (p *Pipeline[In, Out]) notifyFailure(ctx context.Context, err error) {
	title, description := p.form.FailureNotice()
	p.logger.LogAttrs(ctx, slog.LevelDebug, "submit failed",
		slog.String("title", title),
		slog.String("error", err.Error()),
	)
	p.notifier.Notify(ctx, notify.Error(title, description))
}

// must panics on an illegal pipeline transition. The transition table above
// is total for the states Run visits, so a failure here is a bug in Run
// itself, not an input condition.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
