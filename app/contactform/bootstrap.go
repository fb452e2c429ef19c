package contactform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/integration/database/pg"
	"github.com/dmitrymomot/contactform/integration/database/redis"
	"github.com/dmitrymomot/contactform/integration/email/postmark"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
)

// Bootstrap connects the external services selected by cfg and returns the
// options wiring them into NewApp. cleanup releases the connections and is
// safe to call when err is not nil.
func Bootstrap(ctx context.Context, cfg Config, log *slog.Logger) (opts []AppOption, cleanup func(), err error) {
	var closers []func()
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Form.PreferenceStore {
	case StoreMemory:
	case StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		})
		opts = append(opts,
			WithPreferenceStore(redis.NewPreferenceStore(client, cfg.Redis.KeyPrefix, cfg.Redis.PreferenceTTL)),
			WithHealthcheck("redis", redis.Healthcheck(client)),
		)
	default:
		return nil, cleanup, fmt.Errorf("%w: %q", ErrUnknownPreferenceStore, cfg.Form.PreferenceStore)
	}

	switch cfg.Form.Transport {
	case TransportDelay, TransportDev:
	case TransportPostmark:
		client, err := postmark.New(cfg.Postmark)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, WithMailSender(client))
	case TransportSMTP:
		client, err := smtp.New(cfg.SMTP)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, WithMailSender(client))
	case TransportPostgres:
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)

		if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
			return nil, cleanup, err
		}
		opts = append(opts,
			WithSubmitter(pg.NewSubmissionStore(pool)),
			WithHealthcheck("postgres", pg.Healthcheck(pool)),
		)
	default:
		return nil, cleanup, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Form.Transport)
	}

	return opts, cleanup, nil
}
