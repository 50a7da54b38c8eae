package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/regradar/compliance-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS company_profiles (
	id              TEXT PRIMARY KEY,
	company_name    TEXT NOT NULL UNIQUE,
	industry        TEXT,
	profile         TEXT NOT NULL,
	last_scraped_at DATETIME,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_company_profiles_industry ON company_profiles(industry);
CREATE INDEX IF NOT EXISTS idx_company_profiles_scraped ON company_profiles(last_scraped_at);

CREATE TABLE IF NOT EXISTS notification_contacts (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT 1,
	contact    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_notification_contacts_user ON notification_contacts(user_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertProfile inserts the profile or replaces the stored row with the same
// company name. The returned profile carries the row's identity and timestamps.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *model.CompanyProfile) (*model.CompanyProfile, error) {
	now := time.Now().UTC()

	stored := *profile
	stored.ID = uuid.New().String()
	stored.CreatedAt = &now
	stored.UpdatedAt = &now

	// A re-run keeps the row's identity and creation time.
	var existingID string
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM company_profiles WHERE company_name = ?`,
		profile.CompanyName,
	).Scan(&existingID, &createdAt)
	if err == nil {
		stored.ID = existingID
		stored.CreatedAt = &createdAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(err, "sqlite: lookup profile %s", profile.CompanyName)
	}

	payload, merr := json.Marshal(&stored)
	if merr != nil {
		return nil, eris.Wrap(merr, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO company_profiles (id, company_name, industry, profile, last_scraped_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_name) DO UPDATE SET
			industry = excluded.industry,
			profile = excluded.profile,
			last_scraped_at = excluded.last_scraped_at,
			updated_at = excluded.updated_at`,
		stored.ID, stored.CompanyName, stored.Industry, string(payload), nullableTime(stored.LastScrapedAt), now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: upsert profile %s", profile.CompanyName)
	}

	return s.GetProfile(ctx, profile.CompanyName)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, companyName string) (*model.CompanyProfile, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM company_profiles WHERE company_name = ?`, companyName,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get profile %s", companyName)
	}

	return unmarshalProfile(payload)
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfile, error) {
	query := `SELECT profile FROM company_profiles`
	var args []any
	if filter.Industry != "" {
		query += ` WHERE industry = ?`
		args = append(args, filter.Industry)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list profiles")
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, companyName string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM company_profiles WHERE company_name = ?`, companyName)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete profile %s", companyName)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListStaleProfiles returns profiles whose last scrape is older than the
// given age, oldest first, for the refresh job.
func (s *SQLiteStore) ListStaleProfiles(ctx context.Context, olderThan time.Duration, limit int) ([]model.CompanyProfile, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT profile FROM company_profiles
		WHERE last_scraped_at IS NOT NULL AND last_scraped_at < ?
		ORDER BY last_scraped_at ASC LIMIT ?`,
		cutoff, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list stale profiles")
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func scanProfiles(rows *sql.Rows) ([]model.CompanyProfile, error) {
	var profiles []model.CompanyProfile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "store: scan profile")
		}
		p, err := unmarshalProfile(payload)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, eris.Wrap(rows.Err(), "store: iterate profiles")
}

func unmarshalProfile(payload string) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal profile")
	}
	return &p, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
