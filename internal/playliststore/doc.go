// Package playliststore persists playlists as JSON documents named after the
// playlist title.
//
// Each playlist lives at <dir>/<title>.json. Load on a title with no document
// creates a zero-length file and reports the playlist as absent so the
// caller can start a fresh one; that empty file is not valid JSON, so a
// second Load before any Save fails with a serialization error. Save
// overwrites the document in place with no rename or backup, so the last
// writer wins.
//
// Errors are marked with services.ErrIO or services.ErrSerialization so the
// CLI can tell a missing or unreadable file from a corrupt one.
//
// Lock provides an advisory per-playlist lock for callers that run a
// load, mutate, save cycle.
package playliststore
