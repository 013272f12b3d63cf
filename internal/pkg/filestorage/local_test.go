package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func uploadedFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("foto", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, header, err := req.FormFile("foto")
	require.NoError(t, err)
	return header
}

func TestSaveFileWithPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFileHeader(t, "ana.jpg", "jpeg-bytes"), "alumnos")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8000/uploads/alumnos/"))
	require.True(t, strings.HasSuffix(url, ".jpg"))
	// The stored name is a generated one, not the client's filename.
	require.NotContains(t, url, "ana")
}

func TestSaveFileWithPathNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(nil, "alumnos")
	require.NoError(t, err)
	require.Empty(t, url)
}

func TestDeleteFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFileHeader(t, "ana.jpg", "jpeg-bytes"), "alumnos")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(url))

	// Deleting again is a no-op, not an error.
	require.NoError(t, storage.DeleteFile(url))
	require.NoError(t, storage.DeleteFile(""))
}
