package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cistech/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var allowedTimesheetExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".xlsx"}

type FileService interface {
	// UploadTimesheet stores a change-off timesheet attachment and
	// returns its storage path.
	UploadTimesheet(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// DownloadAttachment retrieves a stored attachment.
	DownloadAttachment(ctx context.Context, path string) (io.ReadCloser, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

// UploadTimesheet stores the uploaded timesheet under a unique name so
// concurrent submissions never collide.
func (s *fileServiceImpl) UploadTimesheet(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isValid := false
	for _, allowed := range allowedTimesheetExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png, xlsx allowed")
	}

	newFilename := fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.New().String(), ext)
	path := filepath.Join("timesheets", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, "application/octet-stream")
	if err != nil {
		return "", fmt.Errorf("failed to upload timesheet: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) DownloadAttachment(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}
