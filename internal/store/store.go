// Package store provides the Postgres-backed conference record store.
//
// The store exclusively owns persisted records: callers only ever ask it
// to find, create, or update, never to mutate rows directly. The two
// identity keys are enforced by unique indexes, and the create path is a
// unique-constraint-driven upsert so that two concurrent runs racing on
// the same new record cannot produce two rows.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections
	DefaultMaxIdleConns = 2
	// DefaultConnMaxLifetime is the default maximum connection lifetime
	DefaultConnMaxLifetime = 5 * time.Minute
	// DefaultPingTimeout is the timeout for the connection verification ping
	DefaultPingTimeout = 5 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS conferences (
	id                 BIGSERIAL PRIMARY KEY,
	name               TEXT NOT NULL,
	url                TEXT NOT NULL,
	normalized_url     TEXT NOT NULL UNIQUE,
	normalized_cfp_url TEXT UNIQUE,
	start_date         DATE,
	end_date           DATE,
	city               TEXT NOT NULL DEFAULT 'unknown',
	country            TEXT NOT NULL DEFAULT 'unknown',
	cfp_url            TEXT NOT NULL DEFAULT 'unknown',
	twitter            TEXT NOT NULL DEFAULT 'unknown',
	mastodon           TEXT NOT NULL DEFAULT 'unknown',
	topics             TEXT[] NOT NULL DEFAULT '{}',
	code_of_conduct    TEXT NOT NULL DEFAULT 'unknown',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Connect opens a PostgreSQL connection pool and verifies it with a ping.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("pinging database: %w", pingErr)
	}

	return db, nil
}

// Store persists conference records in PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// New creates a new Store over an existing connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the conferences table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// FindByIdentity returns the records matching either identity key, at
// most two, with any record matched on normalized_url ordered first.
// The url match ordering lets the caller apply url precedence and
// detect the case where the two keys resolve to different records.
// A nil key never matches anything.
func (s *Store) FindByIdentity(ctx context.Context, normalizedURL, normalizedCFPURL *string) ([]*conference.Record, error) {
	query := `
		SELECT id, name, url, normalized_url, normalized_cfp_url,
		       start_date, end_date, city, country, cfp_url,
		       twitter, mastodon, topics, code_of_conduct,
		       created_at, updated_at
		FROM conferences
		WHERE (normalized_url IS NOT DISTINCT FROM $1)
		   OR (normalized_cfp_url IS NOT NULL AND normalized_cfp_url IS NOT DISTINCT FROM $2)
		ORDER BY (normalized_url IS NOT DISTINCT FROM $1) DESC, id
		LIMIT 2
	`

	rows, err := s.db.QueryxContext(ctx, query, normalizedURL, normalizedCFPURL)
	if err != nil {
		return nil, fmt.Errorf("querying by identity: %w", err)
	}
	defer rows.Close()

	matches := make([]*conference.Record, 0, 2)
	for rows.Next() {
		var rec conference.Record
		if scanErr := rows.StructScan(&rec); scanErr != nil {
			return nil, fmt.Errorf("scanning record: %w", scanErr)
		}
		matches = append(matches, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return matches, nil
}

// Create inserts a new record. The insert upserts on normalized_url so
// that a concurrent run deciding "no match" at the same moment folds
// into an update instead of violating the unique index. The record's
// ID and timestamps are populated from the database.
func (s *Store) Create(ctx context.Context, rec *conference.Record) (*conference.Record, error) {
	query := `
		INSERT INTO conferences (name, url, normalized_url, normalized_cfp_url,
		                         start_date, end_date, city, country, cfp_url,
		                         twitter, mastodon, topics, code_of_conduct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (normalized_url) DO UPDATE SET
			name = EXCLUDED.name,
			url = EXCLUDED.url,
			normalized_cfp_url = EXCLUDED.normalized_cfp_url,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			cfp_url = EXCLUDED.cfp_url,
			twitter = EXCLUDED.twitter,
			mastodon = EXCLUDED.mastodon,
			topics = EXCLUDED.topics,
			code_of_conduct = EXCLUDED.code_of_conduct,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		rec.Name,
		rec.URL,
		rec.NormalizedURL,
		rec.NormalizedCFPURL,
		rec.StartDate,
		rec.EndDate,
		rec.City,
		rec.Country,
		rec.CFPURL,
		rec.Twitter,
		rec.Mastodon,
		rec.Topics,
		rec.CodeOfConduct,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("creating record: %w", err)
	}

	return rec, nil
}

// Update overwrites all fields of the record with the given id and
// refreshes updated_at. created_at is never touched.
func (s *Store) Update(ctx context.Context, id int64, rec *conference.Record) (*conference.Record, error) {
	query := `
		UPDATE conferences SET
			name = $1,
			url = $2,
			normalized_url = $3,
			normalized_cfp_url = $4,
			start_date = $5,
			end_date = $6,
			city = $7,
			country = $8,
			cfp_url = $9,
			twitter = $10,
			mastodon = $11,
			topics = $12,
			code_of_conduct = $13,
			updated_at = now()
		WHERE id = $14
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		rec.Name,
		rec.URL,
		rec.NormalizedURL,
		rec.NormalizedCFPURL,
		rec.StartDate,
		rec.EndDate,
		rec.City,
		rec.Country,
		rec.CFPURL,
		rec.Twitter,
		rec.Mastodon,
		rec.Topics,
		rec.CodeOfConduct,
		id,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("updating record %d: %w", id, err)
	}

	return rec, nil
}
