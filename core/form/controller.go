package form

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/validator"
)

// KeySuccess is the message key of the success notification.
const KeySuccess = "form.success"

const tracerName = "github.com/dmitrymomot/contactform/core/form"

// Controller owns the mutable state of one form instance: field values,
// per-field errors and the submission flags.
//
// Errors are stored unlocalized and resolved through the translator on every
// read, so switching the active language re-renders them without validating
// again. Controller is safe for concurrent use.
type Controller struct {
	registry   *Registry
	translator validator.Translator
	submitter  Submitter
	notifier   Notifier
	reporter   Reporter
	observer   Observer
	tracer     trace.Tracer
	logger     *slog.Logger
	resetDelay time.Duration
	id         string

	mu         sync.Mutex
	values     map[string]string
	errors     map[string]validator.Result
	inFlight   bool
	submitted  bool
	closed     bool
	resetTimer *time.Timer
	generation uint64
}

// New creates a controller with an empty value for every field of registry.
func New(registry *Registry, translator validator.Translator, opts ...Option) (*Controller, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if translator == nil {
		return nil, ErrNilTranslator
	}

	c := &Controller{
		registry:   registry,
		translator: translator,
		submitter:  DelaySubmitter(DefaultSubmitDelay),
		notifier:   nopNotifier{},
		observer:   nopObserver{},
		tracer:     otel.Tracer(tracerName),
		logger:     slog.Default(),
		resetDelay: DefaultResetDelay,
		errors:     make(map[string]validator.Result),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if c.reporter == nil {
		c.reporter = LogReporter(c.logger)
	}
	c.logger = c.logger.With(logger.Component("form"), logger.FormID(c.id))
	c.values = c.emptyValues()

	return c, nil
}

// Registry returns the field registry of the form.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// SetValue overwrites the value of a field and clears its recorded error,
// whether or not the new value is valid.
func (c *Controller) SetValue(name, value string) error {
	if _, ok := c.registry.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.values[name] = value
	delete(c.errors, name)
	return nil
}

// HandleBlur validates value against the named field and records the result.
// Unknown names are ignored. The stored value is not changed.
func (c *Controller) HandleBlur(name, value string) {
	desc, ok := c.registry.Lookup(name)
	if !ok {
		return
	}

	res := validator.Check(desc, value)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if res.Valid() {
		delete(c.errors, name)
	} else {
		c.errors[name] = res
	}
	c.mu.Unlock()

	if !res.Valid() {
		c.observer.FieldRejected(name, res.Key)
	}
}

// ValidateAll validates every field over the current values and replaces
// the recorded errors with the fresh results. Reports whether all fields are
// valid.
func (c *Controller) ValidateAll() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	errs := c.validateAllLocked()
	c.mu.Unlock()

	c.reportRejected(errs)
	return errs.IsEmpty()
}

// Submit validates the form and, when valid, delivers the values to the
// submitter. At most one submission is in flight per form.
//
// Invalid forms return validator.ValidationErrors. A failing submitter is
// reported to the Reporter and returned wrapped in ErrSubmissionFailed.
// After success the form is marked submitted, the success message is sent
// to the Notifier and a reset is scheduled.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.inFlight:
		c.mu.Unlock()
		return ErrSubmissionInFlight
	case c.submitted:
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}

	errs := c.validateAllLocked()
	if !errs.IsEmpty() {
		c.mu.Unlock()
		c.reportRejected(errs)
		return errs
	}

	c.inFlight = true
	values := maps.Clone(c.values)
	c.mu.Unlock()

	// The submission cannot be cancelled once started.
	ctx = context.WithoutCancel(ctx)
	ctx, span := c.tracer.Start(ctx, "form.submit",
		trace.WithAttributes(
			attribute.String("form.id", c.id),
			attribute.Int("form.fields", len(values)),
		),
	)
	defer span.End()

	c.observer.SubmissionStarted()
	start := time.Now()
	err := c.submitter.Submit(ctx, values)
	elapsed := time.Since(start)

	c.mu.Lock()
	c.inFlight = false

	if err != nil {
		c.mu.Unlock()

		c.observer.SubmissionFinished(ResultFailure, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission failed")
		c.reporter.ReportError(ctx, "form submission", err)

		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if !c.closed {
		c.submitted = true
		c.scheduleResetLocked()
	}
	message := c.translator.T(KeySuccess)
	c.mu.Unlock()

	c.observer.SubmissionFinished(ResultSuccess, elapsed)
	span.SetStatus(codes.Ok, "")
	c.logger.InfoContext(ctx, "form submitted",
		logger.Result(ResultSuccess),
		logger.Duration(elapsed),
	)
	c.notifier.NotifySuccess(ctx, message)

	return nil
}

// Reset restores empty values, clears errors and the submitted flag, and
// cancels a pending automatic reset.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.resetLocked()
}

// Close cancels the pending automatic reset. A closed controller ignores
// further mutations.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancelResetLocked()
}

// Value returns the current value of a field.
func (c *Controller) Value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Values returns a copy of all field values.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.values)
}

// Error returns the localized error of a field, or an empty string.
func (c *Controller) Error(name string) string {
	c.mu.Lock()
	res, ok := c.errors[name]
	c.mu.Unlock()

	if !ok {
		return ""
	}
	return res.Localize(c.translator)
}

// Errors returns the localized errors keyed by field name.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	results := maps.Clone(c.errors)
	c.mu.Unlock()

	messages := make(map[string]string, len(results))
	for name, res := range results {
		messages[name] = res.Localize(c.translator)
	}
	return messages
}

// SubmissionInFlight reports whether a submission is running.
func (c *Controller) SubmissionInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submitted reports whether the last submission succeeded and the form has
// not been reset since.
func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

func (c *Controller) emptyValues() map[string]string {
	values := make(map[string]string, c.registry.Len())
	for _, name := range c.registry.Names() {
		values[name] = ""
	}
	return values
}

func (c *Controller) validateAllLocked() validator.ValidationErrors {
	var errs validator.ValidationErrors
	results := make(map[string]validator.Result)

	for _, desc := range c.registry.fields {
		res := validator.Check(desc, c.values[desc.Name])
		if !res.Valid() {
			results[desc.Name] = res
			errs.Add(res)
		}
	}

	c.errors = results
	return errs
}

func (c *Controller) reportRejected(errs validator.ValidationErrors) {
	for _, res := range errs {
		c.observer.FieldRejected(res.Field, res.Key)
	}
}

func (c *Controller) resetLocked() {
	c.cancelResetLocked()
	c.values = c.emptyValues()
	c.errors = make(map[string]validator.Result)
	c.submitted = false
}

// scheduleResetLocked arms the automatic reset. The callback captures the
// current generation and does nothing if it changed before firing.
func (c *Controller) scheduleResetLocked() {
	c.cancelResetLocked()
	gen := c.generation

	c.resetTimer = time.AfterFunc(c.resetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || c.generation != gen {
			return
		}
		c.resetLocked()
		c.logger.Debug("form reset after submission")
	})
}

func (c *Controller) cancelResetLocked() {
	c.generation++
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}
