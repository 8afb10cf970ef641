// Package playlist implements the playlist aggregate and its metadata
// reconciliation.
//
// A Playlist is a titled, ordered collection of Videos that is unique by
// video id (first occurrence wins). The item count and the watch_videos URL
// are derived from the video list on demand rather than stored, so every
// mutation keeps them consistent without extra bookkeeping. They are written
// into the JSON document only when a playlist is marshaled.
//
// Reconciler enriches placeholder videos (Fetched == false) with metadata
// from a Provider in a single batched call. The provider must answer for
// every requested id; a short response fails the whole call with an
// *IncompleteMetadataError and leaves the playlist untouched.
//
// The package performs no I/O of its own and never logs. Persistence lives in
// playliststore; the YouTube Data API provider lives in youtube.
package playlist
