package contactform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/health"
	"github.com/dmitrymomot/contactform/core/i18n"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/preference"
	"github.com/dmitrymomot/contactform/core/server"
	"github.com/dmitrymomot/contactform/integration/metrics"
)

// devRecipient receives dev transport mails when no recipient is set.
const devRecipient = "inbox@contactform.local"

type App struct {
	config    Config
	logger    *slog.Logger
	cookie    *cookie.Manager
	resolver  *i18n.Resolver
	registry  *form.Registry
	store     preference.Store
	submitter form.Submitter
	mailer    email.EmailSender
	metrics   *metrics.Collector
	server    *server.Server
	sessions  *Sessions
	checks    map[string]health.Check
	handler   http.Handler
}

type AppOption func(*App) error

// NewApp wires the widget from cfg. Transports and stores that need a
// network connection are passed in with options, see Bootstrap.
func NewApp(cfg Config, opts ...AppOption) (*App, error) {
	app := &App{
		config: cfg,
		logger: logger.New(),
		checks: make(map[string]health.Check),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.cookie == nil {
		cm, err := cookie.NewFromConfig(app.config.Cookie)
		if err != nil {
			return nil, fmt.Errorf("cookie manager: %w", err)
		}
		app.cookie = cm
	}

	if app.resolver == nil {
		r, err := NewResolver(app.logger)
		if err != nil {
			return nil, err
		}
		app.resolver = r
	}

	if app.registry == nil {
		r, err := LoadFields(app.config.Form.FieldsFile)
		if err != nil {
			return nil, fmt.Errorf("field registry: %w", err)
		}
		app.registry = r
	}

	if app.store == nil {
		if app.config.Form.PreferenceStore != StoreMemory {
			return nil, fmt.Errorf("%w: %s preference store", ErrMissingDependency, app.config.Form.PreferenceStore)
		}
		app.store = preference.NewMemoryStore()
	}

	if app.submitter == nil {
		s, err := app.defaultSubmitter()
		if err != nil {
			return nil, err
		}
		app.submitter = s
	}

	if app.metrics == nil {
		app.metrics = metrics.New()
	}

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	app.sessions = NewSessions(app.resolver, app.registry, app.store,
		WithIdleTimeout(app.config.Form.SessionIdleTimeout),
		WithSessionCountHook(app.metrics.SetActiveSessions),
		WithSessionsLogger(app.logger),
		WithFormOptions(
			form.WithSubmitter(app.submitter),
			form.WithResetDelay(app.config.Form.ResetDelay),
			form.WithObserver(app.metrics),
			form.WithReporter(form.LogReporter(app.logger)),
			form.WithLogger(app.logger),
		),
	)
	app.handler = app.routes()

	return app, nil
}

func (app *App) defaultSubmitter() (form.Submitter, error) {
	switch app.config.Form.Transport {
	case TransportDelay:
		return form.DelaySubmitter(app.config.Form.SubmitDelay), nil
	case TransportDev:
		recipient := app.recipient()
		if recipient == "" {
			recipient = devRecipient
		}
		sender := app.mailer
		if sender == nil {
			sender = email.NewDevSender(app.config.Form.DevMailDir)
		}
		return NewMailSubmitter(sender, app.resolver, app.registry, recipient)
	case TransportPostmark, TransportSMTP:
		if app.mailer == nil {
			return nil, fmt.Errorf("%w: %s transport", ErrMissingDependency, app.config.Form.Transport)
		}
		return NewMailSubmitter(app.mailer, app.resolver, app.registry, app.recipient())
	case TransportPostgres:
		return nil, fmt.Errorf("%w: %s transport", ErrMissingDependency, app.config.Form.Transport)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, app.config.Form.Transport)
}

func (app *App) recipient() string {
	if app.config.Form.Recipient != "" || app.config.Form.Transport != TransportPostmark {
		return app.config.Form.Recipient
	}
	return app.config.Postmark.SupportEmail
}

// Handler returns the HTTP handler of the widget.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Sessions returns the visitor session registry.
func (app *App) Sessions() *Sessions {
	return app.sessions
}

// Run serves HTTP and sweeps idle sessions until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.handler))
	g.Go(func() error {
		return app.sessions.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases every visitor session.
func (app *App) Close() {
	app.sessions.CloseAll()
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

func WithCookieManager(cm *cookie.Manager) AppOption {
	return func(app *App) error {
		if cm == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookie = cm
		return nil
	}
}

func WithResolver(r *i18n.Resolver) AppOption {
	return func(app *App) error {
		if r == nil {
			return errors.New("resolver cannot be nil")
		}
		app.resolver = r
		return nil
	}
}

func WithRegistry(r *form.Registry) AppOption {
	return func(app *App) error {
		if r == nil {
			return errors.New("registry cannot be nil")
		}
		app.registry = r
		return nil
	}
}

func WithSubmitter(s form.Submitter) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("submitter cannot be nil")
		}
		app.submitter = s
		return nil
	}
}

// WithMailSender sets the sender used by the mail transports.
func WithMailSender(s email.EmailSender) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("mail sender cannot be nil")
		}
		app.mailer = s
		return nil
	}
}

func WithPreferenceStore(s preference.Store) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("preference store cannot be nil")
		}
		app.store = s
		return nil
	}
}

func WithMetrics(c *metrics.Collector) AppOption {
	return func(app *App) error {
		if c == nil {
			return errors.New("metrics collector cannot be nil")
		}
		app.metrics = c
		return nil
	}
}

// WithHealthcheck adds a dependency check reported by /healthz.
func WithHealthcheck(name string, check health.Check) AppOption {
	return func(app *App) error {
		if name == "" || check == nil {
			return errors.New("healthcheck needs a name and a function")
		}
		app.checks[name] = check
		return nil
	}
}
