package metacache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tubelist/internal/logging"
	"tubelist/internal/playlist"
	"tubelist/internal/services"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Cache stores fetched video metadata keyed by video id.
type Cache struct {
	db     *sql.DB
	path   string
	maxAge time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger attaches a logger for cache diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Open initializes or connects to the cache database at path. Entries older
// than maxAge are treated as misses; maxAge <= 0 keeps entries forever.
func Open(path string, maxAge time.Duration, opts ...Option) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "metacache", "open", "cache path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "metacache", "create directory", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "metacache", "open sqlite db", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrIO, "metacache", "apply pragma", pragma, execErr)
		}
	}

	cache := &Cache{
		db:     db,
		path:   path,
		maxAge: maxAge,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	cache.logger = logging.NewComponentLogger(cache.logger, "metacache")

	if err := cache.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrIO, "metacache", "init schema", path, err)
	}
	return cache, nil
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Lookup returns the fresh cached records for ids, keyed by id.
func (c *Cache) Lookup(ctx context.Context, ids []string) (map[string]playlist.Record, error) {
	found := make(map[string]playlist.Record, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	query := "SELECT id, title, published_at FROM videos WHERE id IN (" + placeholders + ")"
	if c.maxAge > 0 {
		query += " AND fetched_at >= ?"
		args = append(args, c.now().Add(-c.maxAge).Unix())
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cached videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec playlist.Record
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan cached video: %w", err)
		}
		found[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached videos: %w", err)
	}
	return found, nil
}

// Store upserts records, stamping them with the current time.
func (c *Cache) Store(ctx context.Context, records []playlist.Record) error {
	if len(records) == 0 {
		return nil
	}
	fetchedAt := c.now().Unix()
	return retryOnBusy(ctx, func() error {
		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin store tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO videos (id, title, published_at, fetched_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				published_at = excluded.published_at,
				fetched_at = excluded.fetched_at`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if strings.TrimSpace(rec.ID) == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, rec.ID, rec.Title, rec.PublishedAt, fetchedAt); err != nil {
				return fmt.Errorf("upsert video %q: %w", rec.ID, err)
			}
		}
		return tx.Commit()
	})
}

// Purge deletes expired entries and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.maxAge <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.maxAge).Unix()
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := c.db.ExecContext(ctx, "DELETE FROM videos WHERE fetched_at < ?", cutoff)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge expired videos: %w", err)
	}
	return removed, nil
}

// Count returns the number of cached entries, expired ones included.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM videos").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cached videos: %w", err)
	}
	return count, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
