package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/regradar/compliance-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS company_profiles (
	id              UUID PRIMARY KEY,
	company_name    TEXT NOT NULL UNIQUE,
	industry        TEXT,
	profile         JSONB NOT NULL,
	last_scraped_at TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_company_profiles_industry ON company_profiles(industry);
CREATE INDEX IF NOT EXISTS idx_company_profiles_scraped ON company_profiles(last_scraped_at);

CREATE TABLE IF NOT EXISTS notification_contacts (
	id         UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	is_active  BOOLEAN NOT NULL DEFAULT true,
	contact    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_notification_contacts_user ON notification_contacts(user_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, profile *model.CompanyProfile) (*model.CompanyProfile, error) {
	now := time.Now().UTC()

	stored := *profile
	stored.ID = uuid.New().String()
	stored.CreatedAt = &now
	stored.UpdatedAt = &now

	// A re-run keeps the row's identity and creation time.
	var existingID string
	var createdAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at FROM company_profiles WHERE company_name = $1`,
		profile.CompanyName,
	).Scan(&existingID, &createdAt)
	if err == nil {
		stored.ID = existingID
		stored.CreatedAt = &createdAt
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(err, "postgres: lookup profile %s", profile.CompanyName)
	}

	payload, merr := json.Marshal(&stored)
	if merr != nil {
		return nil, eris.Wrap(merr, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO company_profiles (id, company_name, industry, profile, last_scraped_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_name) DO UPDATE SET
			industry = EXCLUDED.industry,
			profile = EXCLUDED.profile,
			last_scraped_at = EXCLUDED.last_scraped_at,
			updated_at = EXCLUDED.updated_at`,
		stored.ID, stored.CompanyName, stored.Industry, payload, stored.LastScrapedAt, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: upsert profile %s", profile.CompanyName)
	}

	return s.GetProfile(ctx, profile.CompanyName)
}

func (s *PostgresStore) GetProfile(ctx context.Context, companyName string) (*model.CompanyProfile, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM company_profiles WHERE company_name = $1`, companyName,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get profile %s", companyName)
	}

	return unmarshalProfile(string(payload))
}

func (s *PostgresStore) ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfile, error) {
	query := `SELECT profile FROM company_profiles`
	var args []any
	if filter.Industry != "" {
		query += ` WHERE industry = $1`
		args = append(args, filter.Industry)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list profiles")
	}
	defer rows.Close()

	return scanPgxProfiles(rows)
}

func (s *PostgresStore) DeleteProfile(ctx context.Context, companyName string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM company_profiles WHERE company_name = $1`, companyName)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete profile %s", companyName)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListStaleProfiles(ctx context.Context, olderThan time.Duration, limit int) ([]model.CompanyProfile, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT profile FROM company_profiles
		WHERE last_scraped_at IS NOT NULL AND last_scraped_at < $1
		ORDER BY last_scraped_at ASC LIMIT $2`,
		cutoff, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stale profiles")
	}
	defer rows.Close()

	return scanPgxProfiles(rows)
}

func scanPgxProfiles(rows pgx.Rows) ([]model.CompanyProfile, error) {
	var profiles []model.CompanyProfile
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan profile")
		}
		p, err := unmarshalProfile(string(payload))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, eris.Wrap(rows.Err(), "postgres: iterate profiles")
}
