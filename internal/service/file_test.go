package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"filevault/internal/mocks"
	"filevault/internal/model"
	"filevault/internal/service"
	"filevault/internal/testutil"
)

func newFileMocks(t *testing.T) (*mocks.FileStore, *mocks.UserStore, *mocks.Storage, *service.File) {
	files := mocks.NewFileStore(t)
	users := mocks.NewUserStore(t)
	storage := mocks.NewStorage(t)
	svc := service.NewFile(files, users, storage, testutil.MakeNoopLogger())
	return files, users, storage, svc
}

func TestFile_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores blob and metadata", func(t *testing.T) {
		files, users, storage, svc := newFileMocks(t)
		body := strings.NewReader("hello")

		users.On("GetByID", ctx, "user@example.com").Return(model.User{ID: "user@example.com"}, nil)
		storage.On("Upload", ctx, mock.AnythingOfType("string"), "text/plain", int64(5), body).Return(nil)
		files.On("Create", ctx, mock.MatchedBy(func(f model.File) bool {
			return f.UserID == "user@example.com" &&
				f.OriginalName == "notes.TXT" &&
				f.Extension == ".txt" &&
				f.MIMEType == "text/plain" &&
				f.Size == 5 &&
				strings.HasPrefix(f.StorageKey, "user@example.com/")
		})).Return(model.File{ID: uuid.New(), OriginalName: "notes.TXT"}, nil)

		got, err := svc.Upload(ctx, "user@example.com", "notes.TXT", "text/plain", 5, body)
		require.NoError(t, err)
		assert.Equal(t, "notes.TXT", got.OriginalName)
	})

	t.Run("removes blob when row creation fails", func(t *testing.T) {
		files, users, storage, svc := newFileMocks(t)
		body := strings.NewReader("hello")

		users.On("GetByID", ctx, "user@example.com").Return(model.User{ID: "user@example.com"}, nil)
		storage.On("Upload", ctx, mock.AnythingOfType("string"), "text/plain", int64(5), body).Return(nil)
		files.On("Create", ctx, mock.Anything).Return(model.File{}, errors.New("constraint violation"))
		storage.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := svc.Upload(ctx, "user@example.com", "notes.txt", "text/plain", 5, body)
		require.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, users, _, svc := newFileMocks(t)

		users.On("GetByID", ctx, "ghost@example.com").Return(model.User{}, model.ErrNotFound)

		_, err := svc.Upload(ctx, "ghost@example.com", "notes.txt", "text/plain", 5, strings.NewReader("x"))
		require.ErrorIs(t, err, model.ErrUnknownSubject)
	})
}

func TestFile_List(t *testing.T) {
	ctx := context.Background()
	files, _, _, svc := newFileMocks(t)

	stored := []model.File{{OriginalName: "a.txt"}, {OriginalName: "b.txt"}}
	files.On("ListByUser", ctx, "user@example.com", 10, 10).Return(stored, nil)
	files.On("CountByUser", ctx, "user@example.com").Return(int64(25), nil)

	got, page, err := svc.List(ctx, "user@example.com", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestFile_Get_OwnershipHidesFile(t *testing.T) {
	ctx := context.Background()
	files, _, _, svc := newFileMocks(t)
	fileID := uuid.New()

	files.On("GetByID", ctx, fileID).Return(model.File{
		ID:     fileID,
		UserID: "owner@example.com",
	}, nil)

	_, err := svc.Get(ctx, "intruder@example.com", fileID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestFile_Download(t *testing.T) {
	ctx := context.Background()
	files, _, storage, svc := newFileMocks(t)
	fileID := uuid.New()

	files.On("GetByID", ctx, fileID).Return(model.File{
		ID:         fileID,
		UserID:     "user@example.com",
		StorageKey: "user@example.com/blob",
		MIMEType:   "text/plain",
	}, nil)
	storage.On("Download", ctx, "user@example.com/blob").
		Return(io.NopCloser(strings.NewReader("contents")), nil)

	file, reader, err := svc.Download(ctx, "user@example.com", fileID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
	assert.Equal(t, "text/plain", file.MIMEType)
}

func TestFile_Update_ReplacesBlob(t *testing.T) {
	ctx := context.Background()
	files, _, storage, svc := newFileMocks(t)
	fileID := uuid.New()
	body := strings.NewReader("new contents")

	files.On("GetByID", ctx, fileID).Return(model.File{
		ID:         fileID,
		UserID:     "user@example.com",
		StorageKey: "user@example.com/old-blob",
	}, nil)
	storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return key != "user@example.com/old-blob"
	}), "application/pdf", int64(12), body).Return(nil)
	files.On("Update", ctx, mock.MatchedBy(func(f model.File) bool {
		return f.ID == fileID && f.OriginalName == "report.pdf" && f.Extension == ".pdf"
	})).Return(model.File{ID: fileID, OriginalName: "report.pdf"}, nil)
	storage.On("Delete", ctx, "user@example.com/old-blob").Return(nil)

	got, err := svc.Update(ctx, "user@example.com", fileID, "report.pdf", "application/pdf", 12, body)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.OriginalName)
}

func TestFile_Delete(t *testing.T) {
	ctx := context.Background()
	files, _, storage, svc := newFileMocks(t)
	fileID := uuid.New()

	files.On("GetByID", ctx, fileID).Return(model.File{
		ID:         fileID,
		UserID:     "user@example.com",
		StorageKey: "user@example.com/blob",
	}, nil)
	storage.On("Delete", ctx, "user@example.com/blob").Return(nil)
	files.On("Delete", ctx, fileID).Return(nil)

	got, err := svc.Delete(ctx, "user@example.com", fileID)
	require.NoError(t, err)
	assert.Equal(t, fileID, got.ID)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1024, "1 kb"},
		{1536, "1.5 kb"},
		{10 << 20, "10 mb"},
		{3 << 30, "3 gb"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.FormatSize(tt.bytes))
	}
}
