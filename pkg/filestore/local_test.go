package filestore_test

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"sportshop/internal/apperror"
	"sportshop/pkg/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Upload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := filestore.NewLocal(dir, "http://localhost:5000/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "Shoe.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	content, err := os.ReadFile(filepath.Join(dir, path.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestLocal_UploadNamesAreUnique(t *testing.T) {
	store, err := filestore.NewLocal(t.TempDir(), "http://localhost:5000")
	require.NoError(t, err)

	a, err := store.Upload(context.Background(), "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Upload(context.Background(), "a.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocal_RejectsUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	store, err := filestore.NewLocal(dir, "http://localhost:5000")
	require.NoError(t, err)

	for _, name := range []string{"shell.sh", "image.gif", "noext"} {
		_, err := store.Upload(context.Background(), name, strings.NewReader("x"))
		assert.True(t, errors.Is(err, filestore.ErrUnsupportedType), name)
		assert.True(t, errors.Is(err, apperror.ErrValidation), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
