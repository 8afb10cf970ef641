package playlist

import (
	"fmt"

	"tubelist/internal/services"
)

// IncompleteMetadataError reports a provider response that did not cover
// every requested video.
type IncompleteMetadataError struct {
	Requested int
	Fetched   int
}

func (e *IncompleteMetadataError) Error() string {
	return fmt.Sprintf("incomplete metadata: requested %d videos, provider returned %d", e.Requested, e.Fetched)
}

// Is lets errors.Is match services.ErrIncompleteMetadata.
func (e *IncompleteMetadataError) Is(target error) bool {
	return target == services.ErrIncompleteMetadata
}
