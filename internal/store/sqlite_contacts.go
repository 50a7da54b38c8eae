package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/regradar/compliance-cli/internal/model"
)

func (s *SQLiteStore) CreateContact(ctx context.Context, contact *model.NotificationContact) (*model.NotificationContact, error) {
	now := time.Now().UTC()

	stored := *contact
	stored.ID = uuid.New().String()
	stored.CreatedAt = &now
	stored.UpdatedAt = &now

	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal contact")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notification_contacts (id, user_id, is_active, contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.UserID, stored.IsActive, string(payload), now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: create contact for user %s", contact.UserID)
	}

	return &stored, nil
}

func (s *SQLiteStore) GetContact(ctx context.Context, id string) (*model.NotificationContact, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT contact FROM notification_contacts WHERE id = ?`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get contact %s", id)
	}

	return unmarshalContact(payload)
}

func (s *SQLiteStore) ListContacts(ctx context.Context, filter ContactFilter) ([]model.NotificationContact, error) {
	query := `SELECT contact FROM notification_contacts WHERE user_id = ?`
	args := []any{filter.UserID}
	if filter.IsActive != nil {
		query += ` AND is_active = ?`
		args = append(args, *filter.IsActive)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close()

	var contacts []model.NotificationContact
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "store: scan contact")
		}
		c, err := unmarshalContact(payload)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, eris.Wrap(rows.Err(), "store: iterate contacts")
}

func (s *SQLiteStore) UpdateContact(ctx context.Context, id string, update model.ContactUpdate) (*model.NotificationContact, error) {
	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update.Apply(contact)
	contact.UpdatedAt = &now

	payload, err := json.Marshal(contact)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal contact")
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE notification_contacts
		SET is_active = ?, contact = ?, updated_at = ?
		WHERE id = ?`,
		contact.IsActive, string(payload), now, id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update contact %s", id)
	}

	return contact, nil
}

func (s *SQLiteStore) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notification_contacts WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete contact %s", id)
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

func unmarshalContact(payload string) (*model.NotificationContact, error) {
	var c model.NotificationContact
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal contact")
	}
	return &c, nil
}
