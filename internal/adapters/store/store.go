// Package store caches fetched raw days in a local sqlite database, so that
// regenerating a schedule does not hammer the feed with a year of requests.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Yossi/zmanim-scraper/internal/app"
	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/pkg/logger"
	"github.com/Yossi/zmanim-scraper/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS raw_days (
	zipcode    TEXT NOT NULL,
	civ_date   TEXT NOT NULL,
	times      TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	PRIMARY KEY (zipcode, civ_date)
);`

// Store is a sqlite-backed raw-day cache keyed by zipcode and civil date.
type Store struct {
	db  *sql.DB
	log logger.Logger
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Store{db: db, log: logger.Named("store")}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached times for a zipcode and date, or ok=false on a
// miss.
func (s *Store) Get(ctx context.Context, zipcode string, date time.Time) (map[string]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT times FROM raw_days WHERE zipcode = ? AND civ_date = ?`,
		zipcode, date.Format("2006-01-02"),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}

	times := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, false, fmt.Errorf("decoding cached day: %w", err)
	}
	return times, true, nil
}

// Put stores one day's times, replacing any previous entry.
func (s *Store) Put(ctx context.Context, zipcode string, date time.Time, times map[string]string) error {
	raw, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("encoding day: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO raw_days (zipcode, civ_date, times, fetched_at) VALUES (?, ?, ?, ?)`,
		zipcode, date.Format("2006-01-02"), string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// CachedSource layers the cache in front of another raw source. Hits skip
// the network entirely; misses are fetched and written back.
type CachedSource struct {
	store   *Store
	next    app.RawSource
	zipcode string
	log     logger.Logger
}

// NewCachedSource wraps next with the cache for one zipcode.
func NewCachedSource(store *Store, next app.RawSource, zipcode string) *CachedSource {
	return &CachedSource{
		store:   store,
		next:    next,
		zipcode: zipcode,
		log:     logger.Named("cache"),
	}
}

// RawDay serves from the cache when possible, falling through to the wrapped
// source on a miss.
func (c *CachedSource) RawDay(ctx context.Context, date time.Time) (model.RawDay, error) {
	times, ok, err := c.store.Get(ctx, c.zipcode, date)
	if err != nil {
		return model.RawDay{}, err
	}
	if ok {
		metrics.RecordCacheHit()
		return model.RawDay{Date: date, Times: times}, nil
	}
	metrics.RecordCacheMiss()

	raw, err := c.next.RawDay(ctx, date)
	if err != nil {
		return model.RawDay{}, err
	}
	if err := c.store.Put(ctx, c.zipcode, date, raw.Times); err != nil {
		// A cache write failure is not worth failing the run over.
		c.log.Warn(ctx, "cache write failed",
			logger.String("date", date.Format("2006-01-02")),
			logger.Error(err))
	}
	return raw, nil
}
