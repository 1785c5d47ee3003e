package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"filevault/internal/logger"
	"filevault/internal/model"
)

// File manages file metadata rows and their blobs in object storage.
type File struct {
	files   model.FileStore
	users   model.UserStore
	storage model.Storage
	logger  *logger.Logger
}

func NewFile(
	files model.FileStore,
	users model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *File {
	return &File{
		files:   files,
		users:   users,
		storage: storage,
		logger:  logger,
	}
}

// Pagination describes one page of a file listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Upload stores the blob and creates the metadata row. The blob is removed
// again if the row cannot be created.
func (s *File) Upload(ctx context.Context, userID, originalName, mimeType string, size int64, reader io.Reader) (model.File, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.File{}, model.ErrUnknownSubject
		}
		return model.File{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	file := model.File{
		ID:           uuid.New(),
		UserID:       userID,
		StorageKey:   storageKey(userID),
		OriginalName: originalName,
		Extension:    strings.ToLower(filepath.Ext(originalName)),
		MIMEType:     mimeType,
		Size:         size,
	}

	if err := s.storage.Upload(ctx, file.StorageKey, mimeType, size, reader); err != nil {
		return model.File{}, fmt.Errorf("failed to upload to storage: %w", err)
	}

	saved, err := s.files.Create(ctx, file)
	if err != nil {
		if delErr := s.storage.Delete(ctx, file.StorageKey); delErr != nil {
			s.logger.Error("File service: failed to delete orphaned blob",
				"storage_key", file.StorageKey,
				"error", delErr.Error())
		}
		return model.File{}, fmt.Errorf("failed to create file: %w", err)
	}

	return saved, nil
}

// List returns one page of the user's files, newest first.
func (s *File) List(ctx context.Context, userID string, page, pageSize int) ([]model.File, Pagination, error) {
	offset := (page - 1) * pageSize

	files, err := s.files.ListByUser(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to list files: %w", err)
	}

	total, err := s.files.CountByUser(ctx, userID)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count files: %w", err)
	}

	return files, Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		HasNext:    int64(page*pageSize) < total,
		HasPrev:    page > 1,
	}, nil
}

// Get returns file metadata, hiding files owned by other users.
func (s *File) Get(ctx context.Context, userID string, fileID uuid.UUID) (model.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	if file.UserID != userID {
		return model.File{}, model.ErrNotFound
	}

	return file, nil
}

// Download returns the file metadata and a reader over its contents.
// The caller closes the reader.
func (s *File) Download(ctx context.Context, userID string, fileID uuid.UUID) (model.File, io.ReadCloser, error) {
	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return model.File{}, nil, err
	}

	reader, err := s.storage.Download(ctx, file.StorageKey)
	if err != nil {
		return model.File{}, nil, fmt.Errorf("failed to download from storage: %w", err)
	}

	return file, reader, nil
}

// Update replaces the file's contents and metadata. The new blob is written
// under a fresh key before the row is updated; the old blob is removed
// best-effort afterwards.
func (s *File) Update(ctx context.Context, userID string, fileID uuid.UUID, originalName, mimeType string, size int64, reader io.Reader) (model.File, error) {
	previous, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return model.File{}, err
	}

	updated := previous
	updated.StorageKey = storageKey(userID)
	updated.OriginalName = originalName
	updated.Extension = strings.ToLower(filepath.Ext(originalName))
	updated.MIMEType = mimeType
	updated.Size = size

	if err := s.storage.Upload(ctx, updated.StorageKey, mimeType, size, reader); err != nil {
		return model.File{}, fmt.Errorf("failed to upload to storage: %w", err)
	}

	saved, err := s.files.Update(ctx, updated)
	if err != nil {
		if delErr := s.storage.Delete(ctx, updated.StorageKey); delErr != nil {
			s.logger.Error("File service: failed to delete orphaned blob",
				"storage_key", updated.StorageKey,
				"error", delErr.Error())
		}
		return model.File{}, fmt.Errorf("failed to update file: %w", err)
	}

	if err := s.storage.Delete(ctx, previous.StorageKey); err != nil {
		s.logger.Error("File service: failed to delete replaced blob",
			"storage_key", previous.StorageKey,
			"error", err.Error())
	}

	return saved, nil
}

// Delete removes the metadata row and the blob. A missing blob is logged,
// not surfaced.
func (s *File) Delete(ctx context.Context, userID string, fileID uuid.UUID) (model.File, error) {
	file, err := s.Get(ctx, userID, fileID)
	if err != nil {
		return model.File{}, err
	}

	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		s.logger.Error("File service: failed to delete blob",
			"storage_key", file.StorageKey,
			"error", err.Error())
	}

	if err := s.files.Delete(ctx, file.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to delete file: %w", err)
	}

	return file, nil
}

// FormatSize renders a byte count for API responses, e.g. "1.5 mb".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 bytes"
	}

	const unit = 1024
	sizes := []string{"bytes", "kb", "mb", "gb"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(unit)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(unit, float64(i))
	return fmt.Sprintf("%s %s", trimZeros(value), sizes[i])
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

func storageKey(userID string) string {
	return fmt.Sprintf("%s/%s", userID, uuid.NewString())
}
