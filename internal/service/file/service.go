package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/storage"
)

var ErrInvalidFileType = errors.New("invalid file type: only pdf, jpg, jpeg, png allowed")

var allowedExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadAttachment stores a supporting document for a request and returns its public URL.
	UploadAttachment(ctx context.Context, folder, employeeID string, file io.Reader, filename string) (string, error)

	// DeleteAttachment removes a file previously returned by UploadAttachment.
	DeleteAttachment(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadAttachment(ctx context.Context, folder, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	valid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return "", ErrInvalidFileType
	}

	key := path.Join(folder, employeeID, uuid.NewString()+ext)
	stored, err := s.storage.Upload(ctx, file, key)
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return s.storage.URL(stored), nil
}

func (s *fileServiceImpl) DeleteAttachment(ctx context.Context, url string) error {
	base := s.storage.URL("")
	key, ok := strings.CutPrefix(url, base)
	if !ok || key == "" {
		return storage.ErrInvalidPath
	}
	return s.storage.Delete(ctx, key)
}
