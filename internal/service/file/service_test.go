package file

import (
	"context"
	"strings"
	"testing"

	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachment(t *testing.T) {
	ctx := context.Background()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads", 0)
	require.NoError(t, err)
	svc := NewFileService(local)

	url, err := svc.UploadAttachment(ctx, "leave", "emp-1", strings.NewReader("%PDF"), "Surat Dokter.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/leave/emp-1/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	require.NoError(t, svc.DeleteAttachment(ctx, url))
	assert.ErrorIs(t, svc.DeleteAttachment(ctx, "http://elsewhere/x.pdf"), storage.ErrInvalidPath)
}

func TestUploadAttachmentRejectsType(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "http://x", 0)
	require.NoError(t, err)
	svc := NewFileService(local)

	_, err = svc.UploadAttachment(context.Background(), "leave", "emp-1", strings.NewReader("MZ"), "virus.exe")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}
