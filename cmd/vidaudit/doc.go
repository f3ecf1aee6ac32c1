// Package main hosts the vidaudit CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into audit batches,
// single-file classification, history queries, dependency status and
// configuration scaffolding. Configuration loading and logger construction
// are centralised in commandContext so subcommands only deal with output.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first and is surfaced here through commands or flags.
package main
