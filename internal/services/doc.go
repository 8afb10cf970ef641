// Package services defines shared utilities consumed by the playlist core,
// its storage and provider adapters, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp command names, playlist titles, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified with errors.Is (configuration, transport, I/O, ...).
//   - ExitCode, which the CLI uses to turn a classified failure into a
//     process exit status.
//
// Core packages return marked errors and never log or exit; presentation is
// left to the command boundary.
package services
