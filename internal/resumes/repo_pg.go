package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, file_name, mime_type, size_bytes, storage_provider, storage_key, extracted_text_key, extracted_at, created_at`

// Create inserts a new résumé row.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_provider,
    storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	provider := res.StorageProvider
	if provider == "" {
		provider = "local"
	}
	_, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.FileName,
		res.MimeType,
		res.SizeBytes,
		provider,
		res.StorageKey,
		res.CreatedAt,
	)
	return err
}

// GetCurrentByUser returns the user's newest résumé.
func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.getOne(ctx, query, userID)
}

// GetByID fetches a résumé owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 AND id = $2 LIMIT 1`
	return r.getOne(ctx, query, userID, resumeID)
}

// ListByUser lists résumés newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpdateExtraction stores the extracted text metadata once.
func (r *PGRepo) UpdateExtraction(ctx context.Context, userID, resumeID, extractedKey string, extractedAt time.Time) error {
	const query = `
UPDATE resumes
SET extracted_text_key = $1, extracted_at = $2
WHERE user_id = $3 AND id = $4 AND extracted_text_key IS NULL`
	_, err := r.DB.ExecContext(ctx, query, extractedKey, extractedAt, userID, resumeID)
	return err
}

func (r *PGRepo) getOne(ctx context.Context, query string, args ...any) (Resume, error) {
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var storageProvider, extractedKey sql.NullString
	var extractedAt sql.NullTime
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.MimeType,
		&res.SizeBytes,
		&storageProvider,
		&res.StorageKey,
		&extractedKey,
		&extractedAt,
		&res.CreatedAt,
	); err != nil {
		return Resume{}, err
	}
	res.StorageProvider = storageProvider.String
	res.ExtractedTextKey = extractedKey.String
	if extractedAt.Valid {
		t := extractedAt.Time
		res.ExtractedAt = &t
	}
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
