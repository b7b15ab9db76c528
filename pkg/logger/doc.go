// Package logger builds context-aware slog loggers from functional options.
//
// New picks a text or JSON handler, applies static attributes and runs the
// registered ContextExtractor callbacks on every record. That is how request
// scoped values such as the request id reach log lines without being passed
// around. FromConfig maps LOG_LEVEL and LOG_FORMAT onto options so operators
// can override an environment preset.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "toastdemo"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "failed to persist toasts", logger.Component("toast"), logger.Error(err))
//
// Attribute helpers (Error, Count, Component, ...) keep key names uniform.
// Error returns an empty Attr for a nil error.
package logger
