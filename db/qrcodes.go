package db

import (
	"context"
)

const recordQrCodeCreated = `
INSERT INTO qr_codes (url, created_at, last_accessed_at, access_count)
VALUES ($1, now(), now(), 1)
ON CONFLICT (url) DO UPDATE
SET last_accessed_at = now(), access_count = qr_codes.access_count + 1
`

func (q *Queries) RecordQrCodeCreated(ctx context.Context, url string) error {
	_, err := q.db.Exec(ctx, recordQrCodeCreated, url)
	return err
}

const recordQrCodeAccessed = `
UPDATE qr_codes
SET last_accessed_at = now(), access_count = access_count + 1
WHERE url = $1
`

func (q *Queries) RecordQrCodeAccessed(ctx context.Context, url string) error {
	_, err := q.db.Exec(ctx, recordQrCodeAccessed, url)
	return err
}

const listQrCodes = `
SELECT url, created_at, last_accessed_at, access_count
FROM qr_codes
ORDER BY last_accessed_at DESC
`

func (q *Queries) ListQrCodes(ctx context.Context) ([]QrCode, error) {
	rows, err := q.db.Query(ctx, listQrCodes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []QrCode
	for rows.Next() {
		var c QrCode
		if err := rows.Scan(&c.Url, &c.CreatedAt, &c.LastAccessedAt, &c.AccessCount); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const deleteQrCode = `
DELETE FROM qr_codes WHERE url = $1
`

func (q *Queries) DeleteQrCode(ctx context.Context, url string) error {
	_, err := q.db.Exec(ctx, deleteQrCode, url)
	return err
}
