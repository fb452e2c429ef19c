package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactform/core/logger"
)

// DefaultSubmitDelay is the latency of the simulated submission.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Submission results reported to the Observer.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Submitter delivers a snapshot of the form values.
type Submitter interface {
	Submit(ctx context.Context, values map[string]string) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, values map[string]string) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, values map[string]string) error {
	return f(ctx, values)
}

// DelaySubmitter waits d and succeeds. It stands in for a real transport.
func DelaySubmitter(d time.Duration) Submitter {
	return SubmitterFunc(func(ctx context.Context, _ map[string]string) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Notifier receives the localized success message. Fire-and-forget.
type Notifier interface {
	NotifySuccess(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// NotifySuccess implements Notifier.
func (f NotifierFunc) NotifySuccess(ctx context.Context, message string) {
	f(ctx, message)
}

// Reporter receives failures that have no user-facing surface.
type Reporter interface {
	ReportError(ctx context.Context, op string, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, op string, err error)

// ReportError implements Reporter.
func (f ReporterFunc) ReportError(ctx context.Context, op string, err error) {
	f(ctx, op, err)
}

// LogReporter writes reported errors to log at error level.
func LogReporter(log *slog.Logger) Reporter {
	if log == nil {
		log = slog.Default()
	}
	return ReporterFunc(func(ctx context.Context, op string, err error) {
		log.ErrorContext(ctx, op,
			logger.Component("form"),
			logger.Action(op),
			logger.Error(err),
		)
	})
}

// Observer is notified about submissions and rejected fields, typically to
// record metrics.
type Observer interface {
	SubmissionStarted()
	SubmissionFinished(result string, d time.Duration)
	FieldRejected(field, key string)
}

type nopObserver struct{}

func (nopObserver) SubmissionStarted()                       {}
func (nopObserver) SubmissionFinished(string, time.Duration) {}
func (nopObserver) FieldRejected(string, string)             {}

type nopNotifier struct{}

func (nopNotifier) NotifySuccess(context.Context, string) {}
