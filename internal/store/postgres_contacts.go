package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/regradar/compliance-cli/internal/model"
)

func (s *PostgresStore) CreateContact(ctx context.Context, contact *model.NotificationContact) (*model.NotificationContact, error) {
	now := time.Now().UTC()

	stored := *contact
	stored.ID = uuid.New().String()
	stored.CreatedAt = &now
	stored.UpdatedAt = &now

	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal contact")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO notification_contacts (id, user_id, is_active, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		stored.ID, stored.UserID, stored.IsActive, payload, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: create contact for user %s", contact.UserID)
	}

	return &stored, nil
}

func (s *PostgresStore) GetContact(ctx context.Context, id string) (*model.NotificationContact, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT contact FROM notification_contacts WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get contact %s", id)
	}

	return unmarshalContact(string(payload))
}

func (s *PostgresStore) ListContacts(ctx context.Context, filter ContactFilter) ([]model.NotificationContact, error) {
	query := `SELECT contact FROM notification_contacts WHERE user_id = $1`
	args := []any{filter.UserID}
	if filter.IsActive != nil {
		query += ` AND is_active = $2`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var contacts []model.NotificationContact
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		c, err := unmarshalContact(string(payload))
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: iterate contacts")
}

func (s *PostgresStore) UpdateContact(ctx context.Context, id string, update model.ContactUpdate) (*model.NotificationContact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update.Apply(contact)
	contact.UpdatedAt = &now

	payload, err := json.Marshal(contact)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal contact")
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE notification_contacts
		SET is_active = $1, contact = $2, updated_at = $3
		WHERE id = $4`,
		contact.IsActive, payload, now, id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update contact %s", id)
	}

	return contact, nil
}

func (s *PostgresStore) DeleteContact(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM notification_contacts WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete contact %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
