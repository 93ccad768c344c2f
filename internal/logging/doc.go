// Package logging builds the zerolog loggers used across pokedeck.
//
// Loggers are configured from config.LoggingConfig, travel through the
// request context (zerolog's WithContext/Ctx), and stamp every event logged
// with .Ctx(ctx) with the ULID trace id of the current command run.
package logging
