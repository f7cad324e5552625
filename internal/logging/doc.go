// Package logging builds the zerolog loggers used across pokedex.
//
// Loggers are configured from a Config (level, format, output, file) and can
// write either to stderr or to a log file. File output is the default for the
// interactive search screen so log lines never draw over the terminal UI; when
// the file cannot be opened the logger falls back to stderr and reports why.
//
// Every command carries a trace ID (a ULID) in its context. TraceHook copies
// it onto each event logged with .Ctx(ctx).
package logging
