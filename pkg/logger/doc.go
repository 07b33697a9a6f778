// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// Every statekit package logs through a *slog.Logger built here so attribute
// keys stay consistent: a transition record always carries "machine_id",
// "strategy", "from", "trigger" and "to", and an executor record always
// carries "worker_id".
//
// # Architecture
//
// New determines the concrete slog.Handler implementation (text or json)
// based on the configured Format and wraps it with LogHandlerDecorator, which
// runs any registered ContextExtractor callbacks before delegating to the
// underlying handler.
//
// Helper constructors such as MachineID, State, Trigger and Strategy live in
// attr.go.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "turnstile"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "transition completed",
//	    logger.MachineID(id),
//	    logger.FromState("locked"),
//	    logger.ToState("unlocked"),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithStaging / WithProduction – defaults per environment.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – override output format.
//   - WithLevel – set a custom slog.Level.
//   - WithAttr – attach static attributes.
//   - WithContextExtractors / WithContextValue – inject attributes from context.
//
// # Error Handling
//
// Error and Errors produce attributes only when the supplied error value is
// non-nil, so
//
//	log.Info("fire finished", logger.Error(err))
//
// needs no nil check.
package logger
