// Package store persists finished company profiles. The enrichment pipeline
// never talks to it directly; callers hand it assembled profiles.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/regradar/compliance-cli/internal/model"
)

// ErrNotFound is returned when no record matches the given key.
var ErrNotFound = eris.New("store: record not found")

// ProfileFilter specifies criteria for listing profiles.
type ProfileFilter struct {
	Industry string `json:"industry,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// ContactFilter specifies criteria for listing notification contacts.
// IsActive nil means both active and inactive contacts.
type ContactFilter struct {
	UserID   string `json:"user_id"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// Store defines the persistence interface for company profiles and
// notification contacts. Profile upsert is keyed by company name: a re-run
// overwrites the previous profile atomically.
type Store interface {
	UpsertProfile(ctx context.Context, profile *model.CompanyProfile) (*model.CompanyProfile, error)
	GetProfile(ctx context.Context, companyName string) (*model.CompanyProfile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.CompanyProfile, error)
	DeleteProfile(ctx context.Context, companyName string) error
	ListStaleProfiles(ctx context.Context, olderThan time.Duration, limit int) ([]model.CompanyProfile, error)

	CreateContact(ctx context.Context, contact *model.NotificationContact) (*model.NotificationContact, error)
	GetContact(ctx context.Context, id string) (*model.NotificationContact, error)
	ListContacts(ctx context.Context, filter ContactFilter) ([]model.NotificationContact, error)
	UpdateContact(ctx context.Context, id string, update model.ContactUpdate) (*model.NotificationContact, error)
	DeleteContact(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
