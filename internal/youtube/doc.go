// Package youtube provides the minimal YouTube Data API v3 client used to
// enrich playlist videos with metadata.
//
// Client.FetchVideos satisfies playlist.Provider: it issues a single
// videos.list request for the whole batch of ids and maps the returned items
// to playlist records. The API silently omits ids it cannot resolve (deleted,
// private, mistyped); the reconciler decides what a short answer means.
// Options allow tests to supply custom HTTP clients or point the client at a
// stub server.
package youtube
