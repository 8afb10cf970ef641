package playliststore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"tubelist/internal/services"
)

const lockRetryDelay = 100 * time.Millisecond

// Lock takes an advisory lock for title, waiting until ctx is done. The
// returned function releases it. Only cooperating tubelist processes honour
// the lock; Save itself does not check it.
func (s *Store) Lock(ctx context.Context, title string) (func() error, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	lockPath := filepath.Join(s.dir, "."+title+".lock")
	lock := flock.New(lockPath)

	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "playliststore", "lock", fmt.Sprintf("playlist %q", title), err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrIO, "playliststore", "lock", fmt.Sprintf("playlist %q is locked by another process", title), nil)
	}
	return lock.Unlock, nil
}
