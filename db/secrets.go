package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const insertSecret = `
INSERT INTO secrets (link_id, encrypted_secret, created_at, expires_at)
VALUES ($1, $2, now(), $3)
`

type InsertSecretParams struct {
	LinkID          string
	EncryptedSecret []byte
	ExpiresAt       time.Time
}

func (q *Queries) InsertSecret(ctx context.Context, arg InsertSecretParams) error {
	_, err := q.db.Exec(ctx, insertSecret, arg.LinkID, arg.EncryptedSecret, arg.ExpiresAt)
	return err
}

const getSecret = `
SELECT link_id, encrypted_secret, created_at, expires_at
FROM secrets
WHERE link_id = $1 AND expires_at > now()
`

// GetSecret returns the stored secret if it exists and has not expired.
// A missing or expired row is reported as (nil, nil), mirroring a cache miss.
func (q *Queries) GetSecret(ctx context.Context, linkID string) (*Secret, error) {
	row := q.db.QueryRow(ctx, getSecret, linkID)
	var s Secret
	err := row.Scan(&s.LinkID, &s.EncryptedSecret, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const secretExists = `
SELECT EXISTS (SELECT 1 FROM secrets WHERE link_id = $1 AND expires_at > now())
`

func (q *Queries) SecretExists(ctx context.Context, linkID string) (bool, error) {
	row := q.db.QueryRow(ctx, secretExists, linkID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const deleteSecret = `
DELETE FROM secrets WHERE link_id = $1
`

// DeleteSecret removes a secret and reports whether a row was actually deleted.
func (q *Queries) DeleteSecret(ctx context.Context, linkID string) (bool, error) {
	tag, err := q.db.Exec(ctx, deleteSecret, linkID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const deleteExpiredSecrets = `
DELETE FROM secrets WHERE expires_at <= now()
`

func (q *Queries) DeleteExpiredSecrets(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteExpiredSecrets)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countActiveSecrets = `
SELECT count(*) FROM secrets WHERE expires_at > now()
`

func (q *Queries) CountActiveSecrets(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countActiveSecrets)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const sumActiveSecretBytes = `
SELECT coalesce(sum(octet_length(encrypted_secret)), 0) FROM secrets WHERE expires_at > now()
`

func (q *Queries) SumActiveSecretBytes(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, sumActiveSecretBytes)
	var total int64
	err := row.Scan(&total)
	return total, err
}
