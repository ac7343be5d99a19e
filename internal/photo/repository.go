package photo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const uniqueViolationCode = "23505"

const photoColumns = `id, file_name, storage_key, file_size, mime_type, width, height,
title, description, category, is_featured, is_visible, uploaded_by, created_at, updated_at`

// Repository provides access to photo metadata storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new photo repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new photo record, assigning id and timestamps.
func (r *Repository) Insert(ctx context.Context, p Photo) (Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO photos (file_name, storage_key, file_size, mime_type, width, height,
                    title, description, category, is_featured, is_visible, uploaded_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + photoColumns + `;`

	row := r.pool.QueryRow(ctx, query,
		p.FileName,
		p.StorageKey,
		p.FileSize,
		p.MimeType,
		p.Width,
		p.Height,
		p.Title,
		p.Description,
		p.Category,
		p.IsFeatured,
		p.IsVisible,
		p.UploadedBy,
	)

	stored, err := scanPhoto(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return Photo{}, ErrStorageKeyConflict
		}
		return Photo{}, fmt.Errorf("insert photo record: %w", err)
	}
	return stored, nil
}

// GetByID fetches a single photo record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1;`

	p, err := scanPhoto(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Photo{}, ErrPhotoNotFound
		}
		return Photo{}, fmt.Errorf("get photo %s: %w", id, err)
	}
	return p, nil
}

// Update applies a partial update to the mutable fields and refreshes
// updated_at, returning the resulting record.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch UpdatePhoto) (Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	sets := []string{}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Category != nil {
		appendSet("category", *patch.Category)
	}
	if patch.IsFeatured != nil {
		appendSet("is_featured", *patch.IsFeatured)
	}
	if patch.IsVisible != nil {
		appendSet("is_visible", *patch.IsVisible)
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE photos SET %s WHERE id = $1 RETURNING %s;`,
		strings.Join(sets, ", "), photoColumns)

	p, err := scanPhoto(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Photo{}, ErrPhotoNotFound
		}
		return Photo{}, fmt.Errorf("update photo %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a photo record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete photo %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// List returns photo records, newest first. With visibleOnly set, hidden
// records are filtered out.
func (r *Repository) List(ctx context.Context, visibleOnly bool) ([]Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + photoColumns + ` FROM photos`
	if visibleOnly {
		query += ` WHERE is_visible = TRUE`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo record: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// AllStorageKeys returns every storage key referenced by a record, for
// reconciliation against the blob store.
func (r *Repository) AllStorageKeys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT storage_key FROM photos;`)
	if err != nil {
		return nil, fmt.Errorf("list storage keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan storage key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage keys: %w", err)
	}
	return keys, nil
}

func scanPhoto(row pgx.Row) (Photo, error) {
	var p Photo
	err := row.Scan(
		&p.ID,
		&p.FileName,
		&p.StorageKey,
		&p.FileSize,
		&p.MimeType,
		&p.Width,
		&p.Height,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.IsFeatured,
		&p.IsVisible,
		&p.UploadedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Photo{}, err
	}
	return p, nil
}
