package contactform

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/i18n"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/preference"
)

// DefaultSessionIdleTimeout is how long an untouched session is kept.
const DefaultSessionIdleTimeout = 30 * time.Minute

// Session is the server-side state of one visitor: preferences, the form
// and a pending notification.
type Session struct {
	ID         string
	Theme      *preference.ThemeController
	Language   *preference.LanguageController
	Translator *i18n.Translator
	Form       *form.Controller

	mu       sync.Mutex
	toast    string
	lastSeen time.Time
}

// PushToast stores a notification for the next render. A newer message
// replaces an unread one.
func (s *Session) PushToast(message string) {
	s.mu.Lock()
	s.toast = message
	s.mu.Unlock()
}

// TakeToast returns the pending notification and clears it.
func (s *Session) TakeToast() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.toast
	s.toast = ""
	return msg
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Seed carries the first-visit signals used when a session is created.
type Seed struct {
	PrefersDark bool
	Language    string
}

// Sessions maps visitor IDs to sessions and closes the idle ones.
type Sessions struct {
	resolver *i18n.Resolver
	registry *form.Registry
	store    preference.Store
	formOpts []form.Option
	idle     time.Duration
	onChange func(n int)
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// SessionsOption configures Sessions.
type SessionsOption func(*Sessions)

// WithFormOptions appends options applied to every form controller.
func WithFormOptions(opts ...form.Option) SessionsOption {
	return func(s *Sessions) {
		s.formOpts = append(s.formOpts, opts...)
	}
}

// WithIdleTimeout sets how long an untouched session survives.
func WithIdleTimeout(d time.Duration) SessionsOption {
	return func(s *Sessions) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithSessionCountHook sets a function called with the number of live
// sessions after every change.
func WithSessionCountHook(fn func(n int)) SessionsOption {
	return func(s *Sessions) {
		s.onChange = fn
	}
}

// WithSessionsLogger sets the logger.
func WithSessionsLogger(l *slog.Logger) SessionsOption {
	return func(s *Sessions) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSessions creates an empty registry. Preferences of each visitor are
// kept in store under the "<visitor>:" prefix.
func NewSessions(resolver *i18n.Resolver, registry *form.Registry, store preference.Store, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		resolver: resolver,
		registry: registry,
		store:    store,
		idle:     DefaultSessionIdleTimeout,
		logger:   slog.Default(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("sessions"))
	return s
}

// Get returns the session of visitor id, creating it from seed on the
// first request. Preference read failures are logged and the defaults are
// used.
func (s *Sessions) Get(ctx context.Context, id string, seed Seed) (*Session, error) {
	now := s.now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if sess, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		sess.touch(now)
		return sess, nil
	}
	s.mu.Unlock()

	sess, err := s.newSession(ctx, id, seed)
	if err != nil {
		return nil, err
	}
	sess.touch(now)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.Form.Close()
		return nil, ErrSessionClosed
	}
	if existing, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		sess.Form.Close()
		existing.touch(now)
		return existing, nil
	}
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.notify(n)
	return sess, nil
}

func (s *Sessions) newSession(ctx context.Context, id string, seed Seed) (*Session, error) {
	log := s.logger.With(logger.VisitorID(id))
	store := preference.Prefixed(s.store, id+":")

	theme, err := preference.NewTheme(ctx, store, seed.PrefersDark)
	if theme == nil {
		return nil, err
	}
	if err != nil {
		log.WarnContext(ctx, "theme preference unavailable", logger.Error(err))
	}

	lang, err := preference.NewLanguage(ctx, store, s.resolver, seed.Language)
	if lang == nil {
		return nil, err
	}
	if err != nil {
		log.WarnContext(ctx, "language preference unavailable", logger.Error(err))
	}

	sess := &Session{
		ID:         id,
		Theme:      theme,
		Language:   lang,
		Translator: i18n.NewTranslator(s.resolver, lang),
	}

	opts := make([]form.Option, 0, len(s.formOpts)+2)
	opts = append(opts, s.formOpts...)
	opts = append(opts,
		form.WithID(id),
		form.WithNotifier(form.NotifierFunc(func(_ context.Context, message string) {
			sess.PushToast(message)
		})),
	)

	ctrl, err := form.New(s.registry, sess.Translator, opts...)
	if err != nil {
		return nil, err
	}
	sess.Form = ctrl

	return sess, nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and forgets sessions idle for longer than the idle timeout.
// It returns the number of removed sessions.
func (s *Sessions) Sweep() int {
	now := s.now()

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.idle {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Form.Close()
	}
	if len(expired) > 0 {
		s.logger.Debug("idle sessions closed", logger.Count("count", len(expired)))
		s.notify(n)
	}
	return len(expired)
}

// Run sweeps periodically until ctx is done, then closes every session.
func (s *Sessions) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// CloseAll closes every session. Later Get calls fail with ErrSessionClosed.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.closed = true
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Form.Close()
	}
	s.notify(0)
}

func (s *Sessions) notify(n int) {
	if s.onChange != nil {
		s.onChange(n)
	}
}
