package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/", 1024)
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("surat dokter"), "leave/emp-1/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "leave/emp-1/a.pdf", key)
	assert.Equal(t, "http://localhost:8080/uploads/leave/emp-1/a.pdf", s.URL(key))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "surat dokter", string(data))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageStaysInsideBase(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x", 0)
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)
}

func TestLocalStorageRejectsOversize(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x", 4)
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("too large"), "a.txt")
	assert.ErrorIs(t, err, ErrTooLarge)
}
