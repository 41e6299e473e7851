package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertLog = `
INSERT INTO logs (request_method, request_path, http_status, url, hostname, message, err)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertLogParams struct {
	RequestMethod *string
	RequestPath   *string
	HttpStatus    *int32
	Url           *string
	Hostname      *string
	Message       *string
	Err           *string
}

func (q *Queries) InsertLog(ctx context.Context, arg InsertLogParams) error {
	_, err := q.db.Exec(ctx, insertLog,
		arg.RequestMethod, arg.RequestPath, arg.HttpStatus, arg.Url, arg.Hostname, arg.Message, arg.Err)
	return err
}

const countLogs = `
SELECT count(*) FROM logs
`

func (q *Queries) CountLogs(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countLogs)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getRecentLogsPaginated = `
SELECT id, created_at, request_method, request_path, http_status, url, hostname, message, err
FROM logs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type GetRecentLogsPaginatedParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) GetRecentLogsPaginated(ctx context.Context, arg GetRecentLogsPaginatedParams) ([]Log, error) {
	rows, err := q.db.Query(ctx, getRecentLogsPaginated, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.RequestMethod, &l.RequestPath,
			&l.HttpStatus, &l.Url, &l.Hostname, &l.Message, &l.Err); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

const deleteOldLogs = `
DELETE FROM logs WHERE created_at < now() - $1::interval
`

func (q *Queries) DeleteOldLogs(ctx context.Context, retention pgtype.Interval) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteOldLogs, retention)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
