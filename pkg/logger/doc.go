// Package logger builds slog loggers with environment-aware defaults and
// automatic injection of request-scoped context attributes.
//
// Development gets human-readable text at debug level; every other mode
// gets JSON at info level. Context extractors let middleware-provided
// values (deployment mode, session ID) appear on every record without
// each call site passing them explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(env, "campusweb"),
//		logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
package logger
