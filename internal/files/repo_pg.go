package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Replace deletes the user's prior rows and inserts the new file inside a
// single transaction, so two files are never recorded for one user.
func (r *PGRepo) Replace(ctx context.Context, file StoredFile) ([]string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT file_path FROM files WHERE user_id = $1`, file.UserID)
	if err != nil {
		return nil, fmt.Errorf("select prior files: %w", err)
	}
	var evicted []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan prior file: %w", err)
		}
		if path != file.Path {
			evicted = append(evicted, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prior files: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE user_id = $1`, file.UserID); err != nil {
		return nil, fmt.Errorf("delete prior files: %w", err)
	}
	const insert = `
INSERT INTO files (user_id, file_path, kind, created_at)
VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insert, file.UserID, file.Path, string(file.Kind), file.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return evicted, nil
}

// Latest returns the newest file row for a user by id descending.
func (r *PGRepo) Latest(ctx context.Context, userID string) (StoredFile, error) {
	const query = `
SELECT id, user_id, file_path, kind, created_at
FROM files
WHERE user_id = $1
ORDER BY id DESC
LIMIT 1`
	var f StoredFile
	var kind string
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&f.ID, &f.UserID, &f.Path, &kind, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredFile{}, ErrNotFound
		}
		return StoredFile{}, err
	}
	f.Kind = Kind(kind)
	return f, nil
}

var _ Repo = (*PGRepo)(nil)
