package playlist

import (
	"context"
	"errors"
	"fmt"

	"tubelist/internal/services"
)

// Record is one metadata entry returned by a Provider. Fields the provider
// did not report are empty strings.
type Record struct {
	ID          string
	Title       string
	PublishedAt string
}

// Provider looks up metadata for a batch of video ids in one call. It may
// return fewer records than ids requested.
type Provider interface {
	FetchVideos(ctx context.Context, ids []string) ([]Record, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ids []string) ([]Record, error)

// FetchVideos calls f.
func (f ProviderFunc) FetchVideos(ctx context.Context, ids []string) ([]Record, error) {
	return f(ctx, ids)
}

// Reconciler fills in metadata for unfetched playlist videos.
type Reconciler struct {
	provider Provider
}

// NewReconciler returns a Reconciler backed by provider.
func NewReconciler(provider Provider) *Reconciler {
	return &Reconciler{provider: provider}
}

// Reconcile requests metadata for every unfetched video in one provider call.
//
// The response must hold exactly one record per requested id, otherwise an
// *IncompleteMetadataError is returned. On any failure the playlist is left
// as it was. On success the already fetched videos keep their order and the
// newly fetched ones follow in provider response order.
func (r *Reconciler) Reconcile(ctx context.Context, p *Playlist) error {
	if p == nil {
		return errors.New("reconcile: playlist is nil")
	}
	pending := p.Pending()
	if len(pending) == 0 {
		return nil
	}
	if r == nil || r.provider == nil {
		return services.Wrap(services.ErrConfiguration, "reconcile", "fetch metadata", "no metadata provider configured", nil)
	}

	records, err := r.provider.FetchVideos(ctx, pending)
	if err != nil {
		if errors.Is(err, services.ErrTransport) {
			return fmt.Errorf("reconcile: %w", err)
		}
		return services.Wrap(services.ErrTransport, "reconcile", "fetch metadata", "", err)
	}
	if len(records) != len(pending) {
		return &IncompleteMetadataError{Requested: len(pending), Fetched: len(records)}
	}

	merged := make([]Video, 0, p.NumItems()-len(pending)+len(records))
	for _, v := range p.videos {
		if v.Fetched {
			merged = append(merged, v)
		}
	}
	for _, rec := range records {
		merged = append(merged, VideoFromRecord(rec))
	}
	p.videos = merged
	return nil
}
