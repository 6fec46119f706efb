package httpclient

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
)

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/verify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer x", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/verify", map[string]string{"Authorization": "Bearer x"}, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSONNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "  bad token \n")
	}))
	defer srv.Close()

	err := New(time.Second).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "body=bad token")
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "preset", r.FormValue("upload_preset"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "dog.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(b))

		_, _ = io.WriteString(w, `{"secure_url":"https://cdn/x.png"}`)
	}))
	defer srv.Close()

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	err := New(time.Second).PostMultipart(context.Background(), srv.URL+"/upload",
		map[string]string{"upload_preset": "preset"},
		FilePart{Field: "file", Filename: "dog.png", Content: strings.NewReader("PNGDATA")},
		&out)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", out.SecureURL)
}

func TestRelativePathNeedsBaseURL(t *testing.T) {
	err := New(0).DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	assert.EqualError(t, err, "httpclient: relative path requires BaseURL")
}

func TestNewWithBaseURLRejectsInvalid(t *testing.T) {
	_, err := NewWithBaseURL("not a url", time.Second)
	assert.Error(t, err)
}
