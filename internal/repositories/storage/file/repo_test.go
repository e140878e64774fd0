package filerepo

import (
	"context"
	"io"
	"ipbtracker/internal/models"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFetchDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewRepository(t.TempDir())

	locator, err := repo.Store(ctx, "dok kebun.pdf", "application/pdf", 4, strings.NewReader("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(locator, "dok_kebun.pdf"))

	rc, err := repo.Fetch(ctx, locator)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "data", string(content))

	require.NoError(t, repo.Delete(ctx, locator))

	_, err = repo.Fetch(ctx, locator)
	assert.ErrorIs(t, err, models.ErrBlobNotFound)
}

func TestDelete_Missing(t *testing.T) {
	t.Parallel()

	repo := NewRepository(t.TempDir())

	err := repo.Delete(context.Background(), "123-missing.pdf")
	assert.ErrorIs(t, err, models.ErrBlobNotFound)
}

func TestFetch_RejectsTraversal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := NewRepository(filepath.Join(root, "blobs"))
	require.NoError(t, repo.Init())
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret"), []byte("x"), 0o600))

	_, err := repo.Fetch(context.Background(), "../secret")
	assert.ErrorIs(t, err, models.ErrInvalidParams)

	err = repo.Delete(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestStore_MissingRoot(t *testing.T) {
	t.Parallel()

	repo := NewRepository(filepath.Join(t.TempDir(), "absent"))

	_, err := repo.Store(context.Background(), "a.pdf", "application/pdf", 1, strings.NewReader("a"))
	assert.ErrorContains(t, err, "Store")
}
