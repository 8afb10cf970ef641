// Package metacache keeps previously fetched video metadata in SQLite so
// repeated additions of the same video do not cost another API lookup.
//
// Cache.Provider decorates any playlist.Provider: ids with a fresh cached
// record are answered locally, the rest go upstream in one batch and are
// written back. The reconciler still sees a single provider call per
// reconciliation and still enforces that every requested id was answered.
//
// The cache is best effort. Read or write failures are logged and the lookup
// falls through to the upstream provider. Schema changes bump schemaVersion
// in schema.go; users delete the cache file to adopt the new schema.
package metacache
