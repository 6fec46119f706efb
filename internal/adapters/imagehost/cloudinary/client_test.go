package cloudinary

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/domain/images"
	"pet-adoption/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/shelter/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "pets", r.FormValue("upload_preset"))

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "rex.png", fh.Filename)
		assert.Equal(t, "pngdata", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example/rex.png"}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{CloudName: "shelter", UploadPreset: "pets", BaseURL: srv.URL})
	require.NoError(t, err)

	u, err := c.Upload(context.Background(), images.File{Name: "rex.png", Data: []byte("pngdata")})
	require.NoError(t, err)
	assert.Equal(t, "https://res.example/rex.png", u)
}

func TestUploadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{CloudName: "shelter", UploadPreset: "nope", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), images.File{Name: "a.png", Data: []byte("x")})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpclient.StatusCode(err))

	_, err = NewClient(Config{CloudName: "shelter"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
