package form

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// DefaultResetDelay is the time between a successful submission and the
// automatic reset of the form.
const DefaultResetDelay = 2 * time.Second

// Option configures a Controller.
type Option func(*Controller) error

// WithSubmitter sets the submission transport.
// Defaults to DelaySubmitter(DefaultSubmitDelay).
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) error {
		if s != nil {
			c.submitter = s
		}
		return nil
	}
}

// WithNotifier sets the success notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) error {
		if n != nil {
			c.notifier = n
		}
		return nil
	}
}

// WithReporter sets the collaborator receiving submission failures.
// Defaults to LogReporter over the controller logger.
func WithReporter(r Reporter) Option {
	return func(c *Controller) error {
		if r != nil {
			c.reporter = r
		}
		return nil
	}
}

// WithObserver sets the metrics hook.
func WithObserver(o Observer) Option {
	return func(c *Controller) error {
		if o != nil {
			c.observer = o
		}
		return nil
	}
}

// WithResetDelay sets the delay of the automatic reset after success.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) error {
		if d < 0 {
			return ErrInvalidResetDelay
		}
		c.resetDelay = d
		return nil
	}
}

// WithTracer sets the tracer used for submission spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) error {
		if t != nil {
			c.tracer = t
		}
		return nil
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithID sets the identifier attached to logs and spans.
func WithID(id string) Option {
	return func(c *Controller) error {
		c.id = id
		return nil
	}
}
