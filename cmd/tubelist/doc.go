// Package main hosts the tubelist CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into playlist
// operations. create, add and remove mutate a saved playlist; print shows a
// watch URL without saving; show, list and status report state; cache
// maintains the SQLite metadata cache. Config resolution, logging setup, the
// per-playlist lock, and metadata provider wiring live in commandContext so
// subcommands stay declarative.
//
// Errors bubble up to main, which prints them and exits with the sysexits
// code chosen by services.ExitCode.
package main
