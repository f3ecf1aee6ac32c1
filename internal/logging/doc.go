// Package logging assembles structured slog loggers for the vidaudit CLI.
//
// Console output is either a compact "<time> <LEVEL> <component>: msg k=v"
// line or JSON with ts/level/msg keys. When a log directory is configured,
// every record is also teed as JSON into a daily file, which CleanupOldLogs
// prunes after the configured retention. Helpers tag lines with the batch
// identifier carried on the context and enforce the cause/impact/next-step
// shape of WARN records.
package logging
