// Package log defines the event logging interface the backends report
// through.
//
// The library never writes to a global logger. Components accept a Logger
// and default to NoopLogger when none is supplied; SlogAdapter bridges
// events into a log/slog logger for applications that want console output.
package log
