// Package config loads, normalizes, and validates tubelist configuration data.
//
// It supplies repository defaults, expands user paths (tilde shortcuts and
// the $HOME and $XDG_* variables), reads TOML files, and honours the
// YOUTUBE_API_KEY environment fallback. Missing credentials or an unusable
// save directory surface as services.ErrConfiguration before any command
// touches a playlist.
package config
