package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileStore defines persistence operations for file metadata.
type FileStore interface {
	Create(ctx context.Context, file File) (File, error)
	GetByID(ctx context.Context, id uuid.UUID) (File, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]File, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, file File) (File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Storage stores file contents, keyed separately from the metadata rows.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, size int64, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// File represents stored file metadata. Contents live in object storage
// under StorageKey.
type File struct {
	ID           uuid.UUID
	UserID       string
	StorageKey   string
	OriginalName string
	Extension    string
	MIMEType     string
	Size         int64
	UploadedAt   time.Time
}
