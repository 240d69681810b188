package media

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/toyshub/internal/apperr"
)

func TestHTTPUploader_Success(t *testing.T) {
	var gotFilename string
	var gotContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContent, err = io.ReadAll(file)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://cdn.example.com/car.jpg"}`))
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)
	url, err := uploader.Upload(context.Background(), "car.jpg", strings.NewReader("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/car.jpg", url)
	assert.Equal(t, "car.jpg", gotFilename)
	assert.Equal(t, "image-bytes", string(gotContent))
}

func TestHTTPUploader_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)
	_, err := uploader.Upload(context.Background(), "car.jpg", strings.NewReader("x"))

	require.Error(t, err)
	assert.True(t, apperr.IsUpstream(err))
}

func TestHTTPUploader_MissingURLInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, 5*time.Second)
	_, err := uploader.Upload(context.Background(), "car.jpg", strings.NewReader("x"))

	require.Error(t, err)
	assert.True(t, apperr.IsUpstream(err))
}
