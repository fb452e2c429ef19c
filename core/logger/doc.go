// Package logger builds *slog.Logger instances and provides attribute helpers
// with consistent key names.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("contactform"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("form submitted",
//		logger.Component("form"),
//		logger.FormID(id),
//		logger.Duration(time.Since(start)),
//	)
//
// WithProduction switches to JSON at info level. WithContextExtractors adds
// request-scoped attributes (request id, visitor id) to every *Context call:
//
//	log := logger.New(
//		logger.WithProduction("contactform"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//
// # Attribute Helpers
//
// Helpers that take a string or error return an empty slog.Attr for zero
// input, which slog drops. That allows calls like
//
//	log.Error("submission failed", logger.Error(err), logger.Field(name))
//
// without nil checks.
package logger
