/*
Package log provides structured logging for the brokerage using zerolog.

The global Logger is configured once via Init and then shared by every
package in the module. Component-specific child loggers (WithComponent,
WithHostIdentity, WithBackend, WithExchangeID) attach a field without
threading it through every call site.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})
	log.Info("brokerage starting")

	coordLog := log.WithComponent("coordinator-client").
		With().Str("exchange_id", id).Logger()
	coordLog.Warn().Err(err).Msg("request timed out")

Fatal exits the process (os.Exit via zerolog) and should only be used for
unrecoverable startup errors, never from within brokerage request handling —
the façade is designed to degrade to an empty worker list rather than crash
the caller's build.
*/
package log
