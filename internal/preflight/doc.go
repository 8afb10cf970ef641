// Package preflight provides readiness checks for the filesystem paths and
// external services tubelist depends on.
//
// The CLI "tubelist status" command runs RunAll and renders each Result.
// Checks for optional features, such as the metadata cache, are gated by
// their config toggle and skipped when disabled.
package preflight
