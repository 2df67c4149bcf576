// Package logger builds *slog.Logger values with environment presets and
// context-driven attributes, and provides attribute helpers with stable keys.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "bookshelf"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), auth.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "failed to save book", logger.UserID(id), logger.Error(err))
//
// Records logged with a request context automatically carry request_id and
// user_id when the extractors find them.
package logger
