package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"filevault/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file model.File) (model.File, error) {
	const query = `
        INSERT INTO files (id, user_id, storage_key, original_name, extension, mime_type, size, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING id, user_id, storage_key, original_name, extension, mime_type, size, uploaded_at
    `

	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}

	var saved model.File
	err := r.db.QueryRow(ctx, query,
		file.ID, file.UserID, file.StorageKey, file.OriginalName, file.Extension, file.MIMEType, file.Size,
	).Scan(
		&saved.ID, &saved.UserID, &saved.StorageKey, &saved.OriginalName,
		&saved.Extension, &saved.MIMEType, &saved.Size, &saved.UploadedAt,
	)
	if err != nil {
		return model.File{}, fmt.Errorf("failed to create file: %w", err)
	}
	return saved, nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.File, error) {
	const query = `
        SELECT id, user_id, storage_key, original_name, extension, mime_type, size, uploaded_at
        FROM files WHERE id = $1
    `
	var f model.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.UserID, &f.StorageKey, &f.OriginalName, &f.Extension, &f.MIMEType, &f.Size, &f.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to get file by id: %w", err)
	}
	return f, nil
}

func (r *FileRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.File, error) {
	const query = `
        SELECT id, user_id, storage_key, original_name, extension, mime_type, size, uploaded_at
        FROM files WHERE user_id = $1
        ORDER BY uploaded_at DESC
        OFFSET $2 LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []model.File
	for rows.Next() {
		var f model.File
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.StorageKey, &f.OriginalName, &f.Extension, &f.MIMEType, &f.Size, &f.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate file rows: %w", err)
	}
	return files, nil
}

func (r *FileRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM files WHERE user_id = $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return count, nil
}

func (r *FileRepository) Update(ctx context.Context, file model.File) (model.File, error) {
	const query = `
        UPDATE files SET storage_key = $2, original_name = $3, extension = $4, mime_type = $5, size = $6, uploaded_at = NOW()
        WHERE id = $1
        RETURNING id, user_id, storage_key, original_name, extension, mime_type, size, uploaded_at
    `
	var saved model.File
	err := r.db.QueryRow(ctx, query,
		file.ID, file.StorageKey, file.OriginalName, file.Extension, file.MIMEType, file.Size,
	).Scan(
		&saved.ID, &saved.UserID, &saved.StorageKey, &saved.OriginalName,
		&saved.Extension, &saved.MIMEType, &saved.Size, &saved.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to update file: %w", err)
	}
	return saved, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM files WHERE id = $1`
	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
