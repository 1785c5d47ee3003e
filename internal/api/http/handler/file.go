package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"filevault/internal/api/http/response"
	"filevault/internal/logger"
	"filevault/internal/model"
	"filevault/internal/service"
)

// maxUploadSize bounds a single multipart upload.
const maxUploadSize = 10 << 20 // 10 MiB

var allowedExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".txt": {}, ".csv": {},
	".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
}

var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/gif": {},
	"application/pdf": {}, "text/plain": {}, "text/csv": {},
	"application/msword":       {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
}

// FileService defines file storage operations.
type FileService interface {
	Upload(ctx context.Context, userID, originalName, mimeType string, size int64, reader io.Reader) (model.File, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]model.File, service.Pagination, error)
	Get(ctx context.Context, userID string, fileID uuid.UUID) (model.File, error)
	Download(ctx context.Context, userID string, fileID uuid.UUID) (model.File, io.ReadCloser, error)
	Update(ctx context.Context, userID string, fileID uuid.UUID, originalName, mimeType string, size int64, reader io.Reader) (model.File, error)
	Delete(ctx context.Context, userID string, fileID uuid.UUID) (model.File, error)
}

// File handles HTTP endpoints for file management.
type File struct {
	service FileService
	ctxMgr  model.ContextManager
	logger  *logger.Logger
}

// NewFile creates a new File handler.
func NewFile(service FileService, ctxMgr model.ContextManager, logger *logger.Logger) *File {
	return &File{service: service, ctxMgr: ctxMgr, logger: logger}
}

type fileResponse struct {
	ID            string    `json:"id"`
	OriginalName  string    `json:"originalName"`
	Extension     string    `json:"extension"`
	MIMEType      string    `json:"mimeType"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"sizeFormatted"`
	UploadDate    time.Time `json:"uploadDate"`
}

func toFileResponse(f model.File) fileResponse {
	return fileResponse{
		ID:            f.ID.String(),
		OriginalName:  f.OriginalName,
		Extension:     f.Extension,
		MIMEType:      f.MIMEType,
		Size:          f.Size,
		SizeFormatted: service.FormatSize(f.Size),
		UploadDate:    f.UploadedAt,
	}
}

// Upload accepts a single multipart file and stores it.
func (h *File) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	file, header, err := h.readUpload(w, r)
	if err != nil {
		// readUpload has written the response.
		return
	}
	defer file.Close()

	saved, err := h.service.Upload(r.Context(), userID, header.Filename, contentType(header), header.Size, file)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "file uploaded successfully",
		"file":    toFileResponse(saved),
	})
}

// List returns one page of the user's files.
func (h *File) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	page := intQuery(r, "page", 1)
	pageSize := intQuery(r, "limit", 10)

	if page < 1 {
		response.WriteError(w, http.StatusBadRequest, "invalid page number", "page must be greater than 0")
		return
	}
	if pageSize < 1 || pageSize > 100 {
		response.WriteError(w, http.StatusBadRequest, "invalid list size", "list size must be between 1 and 100")
		return
	}

	files, pagination, err := h.service.List(r.Context(), userID, page, pageSize)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	items := make([]fileResponse, 0, len(files))
	for _, f := range files {
		items = append(items, toFileResponse(f))
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"files":      items,
		"pagination": pagination,
	})
}

// Get returns metadata for one file.
func (h *File) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	fileID, err := pathID(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, err := h.service.Get(r.Context(), userID, fileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"file": toFileResponse(file)})
}

// Download streams the file's contents.
func (h *File) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	fileID, err := pathID(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, reader, err := h.service.Download(r.Context(), userID, fileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", file.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("File handler: failed to stream file",
			"file_id", fileID,
			"error", err.Error())
	}
}

// Update replaces a file's contents and metadata.
func (h *File) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	fileID, err := pathID(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, header, err := h.readUpload(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	saved, err := h.service.Update(r.Context(), userID, fileID, header.Filename, contentType(header), header.Size, file)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "file updated successfully",
		"file":    toFileResponse(saved),
	})
}

// Delete removes a file.
func (h *File) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	fileID, err := pathID(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	file, err := h.service.Delete(r.Context(), userID, fileID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "file deleted successfully",
		"file":    toFileResponse(file),
	})
}

// readUpload parses the multipart form and validates the single "file"
// field. On failure it writes the error response and returns a non-nil error.
func (h *File) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.WriteError(w, http.StatusBadRequest, "file too large", "maximum file size is 10MB")
		return nil, nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "no file uploaded", "please select a file to upload")
		return nil, nil, err
	}

	if header.Size == 0 {
		file.Close()
		response.WriteError(w, http.StatusBadRequest, "empty file", "the uploaded file is empty")
		return nil, nil, fmt.Errorf("empty file")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	_, extOK := allowedExtensions[ext]
	_, mimeOK := allowedMIMETypes[contentType(header)]
	if !extOK || !mimeOK {
		file.Close()
		response.WriteError(w, http.StatusBadRequest, "file type not allowed",
			fmt.Sprintf("MIME: %s, extension: %s", contentType(header), ext))
		return nil, nil, fmt.Errorf("file type not allowed")
	}

	return file, header, nil
}

func contentType(header *multipart.FileHeader) string {
	ct := header.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}
