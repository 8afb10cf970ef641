package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tubelist/internal/metacache"
	"tubelist/internal/youtube"
)

// youtubeCheckTimeout caps the reachability probe regardless of the
// configured request timeout.
const youtubeCheckTimeout = 15 * time.Second

// CheckYouTube verifies that the Data API is reachable and accepts the key.
// It issues a single id-only lookup with no retries.
func CheckYouTube(ctx context.Context, apiKey, baseURL string, timeout time.Duration) Result {
	const name = "YouTube Data API"

	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	client, err := youtube.New(apiKey, baseURL, youtube.WithTimeout(timeout))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, youtubeCheckTimeout)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeYouTubeError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckMetadataCache opens the cache database and reports its entry count.
func CheckMetadataCache(ctx context.Context, path string, maxAge time.Duration) Result {
	const name = "Metadata cache"

	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "missing path"}
	}
	if dir := CheckDirectoryAccess(name, filepath.Dir(path)); !dir.Passed {
		return dir
	}
	cache, err := metacache.Open(path, maxAge)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer cache.Close()

	count, err := cache.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d entries)", path, count)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeYouTubeError produces a human-readable summary for API probe failures.
func summarizeYouTubeError(err error) string {
	if youtube.IsAuthError(err) {
		return "auth failed (check youtube.api_key)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out (API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "probe timed out (API unreachable)"
	}
	return err.Error()
}
