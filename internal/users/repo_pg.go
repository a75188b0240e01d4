package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, full_name, picture_url, created_at, updated_at`

// Upsert writes the profile. Empty incoming fields keep the stored value, so a
// token without a picture claim never erases one set earlier.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
  full_name = COALESCE(EXCLUDED.full_name, users.full_name),
  picture_url = COALESCE(EXCLUDED.picture_url, users.picture_url),
  updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		optional(user.FullName),
		optional(user.PictureURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	var (
		user       User
		fullName   sql.NullString
		pictureURL sql.NullString
	)
	err := row.Scan(&user.ID, &user.Email, &fullName, &pictureURL, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.FullName = fullName.String
	user.PictureURL = pictureURL.String
	return user, nil
}

func optional(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

var _ Repo = (*PGRepo)(nil)
