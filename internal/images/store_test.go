package images

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadHeader builds a real multipart.FileHeader the way gin would hand
// one to the handler.
func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(uploadHeader(t, "photo.jpg", "data")))
	assert.NoError(t, Validate(uploadHeader(t, "PHOTO.PNG", "data")))
	assert.ErrorIs(t, Validate(uploadHeader(t, "doc.pdf", "data")), ErrInvalidType)
	assert.ErrorIs(t, Validate(uploadHeader(t, "noext", "data")), ErrInvalidType)

	big := uploadHeader(t, "big.jpg", "x")
	big.Size = MaxSize + 1
	assert.ErrorIs(t, Validate(big), ErrTooLarge)
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	rel, err := store.Save(uploadHeader(t, "park.JPG", "image-bytes"), now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, filepath.Join("2026", "03", "10")+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(rel, ".jpg"), "extension is lowercased")

	data, err := os.ReadFile(filepath.Join(store.Root, rel))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.Join(store.Root, rel))
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op
	assert.NoError(t, store.Remove(rel))
	assert.NoError(t, store.Remove(""))
}

func TestSaveRejectsInvalidUpload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "notes.txt", "hello"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestSavedNamesDoNotCollide(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now()
	a, err := store.Save(uploadHeader(t, "same.jpg", "one"), now)
	require.NoError(t, err)
	b, err := store.Save(uploadHeader(t, "same.jpg", "two"), now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
