package filestorage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parcels/internal/adapters/out/filestorage"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, 0)
	require.NoError(t, err)

	ref, err := storage.Save(ctx, "Label.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	other, err := storage.Save(ctx, "label.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)

	require.NoError(t, storage.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(ref, "uploads/")))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, storage.Delete(ctx, ref), "deleting twice is fine")
	require.NoError(t, storage.Delete(ctx, ""))
}

func TestLocalStorage_RejectsUnsupportedFiles(t *testing.T) {
	storage, err := filestorage.NewLocalStorage(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "invoice.pdf", strings.NewReader("%PDF"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLocalStorage_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, 4)
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "big.jpg", strings.NewReader("12345"))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial file is removed")
}

func TestLocalStorage_DeleteRejectsTraversal(t *testing.T) {
	storage, err := filestorage.NewLocalStorage(t.TempDir(), 0)
	require.NoError(t, err)

	for _, ref := range []string{"uploads/../secret", "other/x.png", "uploads/"} {
		require.ErrorIs(t, storage.Delete(context.Background(), ref), errs.ErrValueIsInvalid, ref)
	}
}

func TestIsAllowedContentType(t *testing.T) {
	assert.True(t, filestorage.IsAllowedContentType("image/jpeg"))
	assert.True(t, filestorage.IsAllowedContentType("IMAGE/PNG; charset=binary"))
	assert.True(t, filestorage.IsAllowedContentType("image/gif"))
	assert.False(t, filestorage.IsAllowedContentType("application/pdf"))
}
