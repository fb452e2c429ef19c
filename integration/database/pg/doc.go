// Package pg manages the PostgreSQL pool, applies schema migrations and
// stores contact form submissions.
//
// Configuration comes from environment variables (see Config). The pool is
// created by Connect, which retries the initial ping with exponential backoff:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//
//	ctrl, err := form.New(registry, translator,
//		form.WithSubmitter(pg.NewSubmissionStore(pool)),
//	)
//
// Migrate runs goose against the migrations embedded in this package unless
// Config.MigrationsPath names a directory on disk.
//
// # Transactions
//
// WithTx attaches a pgx.Tx to a context. SubmissionStore writes through that
// transaction when one is present, so a submission can commit together with
// other writes:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	if err := store.Submit(pg.WithTx(ctx, tx), values); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors.
package pg
