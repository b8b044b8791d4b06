// Package logging builds slog loggers with console and JSON handlers.
// The console handler prefixes messages with the component attribute so a
// run reads as a linear, human-auditable narrative.
package logging
