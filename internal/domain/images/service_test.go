package images

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

// ---- fake host ----

type fakeHost struct {
	mu       sync.Mutex
	calls    []string
	failName string
	inflight atomic.Int32
	peak     atomic.Int32
}

func (h *fakeHost) Upload(ctx context.Context, f File) (string, error) {
	n := h.inflight.Add(1)
	defer h.inflight.Add(-1)
	for {
		p := h.peak.Load()
		if n <= p || h.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	h.mu.Lock()
	h.calls = append(h.calls, f.Name)
	h.mu.Unlock()

	if f.Name == h.failName {
		return "", errors.New("host down")
	}
	return "https://img.example/" + f.Name, nil
}

func batch(names ...string) []File {
	out := make([]File, 0, len(names))
	for _, n := range names {
		out = append(out, File{Name: n, Data: pngBytes})
	}
	return out
}

// ---- service ----

func TestUploadBatchKeepsOrder(t *testing.T) {
	host := &fakeHost{}
	svc := NewService(host, Options{MaxBytes: 1 << 20, Concurrency: 2}, logger.Nop(), nil)

	urls, err := svc.UploadBatch(context.Background(), batch("a.png", "b.png", "c.png", "d.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://img.example/a.png",
		"https://img.example/b.png",
		"https://img.example/c.png",
		"https://img.example/d.png",
	}, urls)
	assert.LessOrEqual(t, host.peak.Load(), int32(2))
}

func TestUploadBatchAllOrNothing(t *testing.T) {
	host := &fakeHost{failName: "b.png"}
	svc := NewService(host, Options{Concurrency: 1}, logger.Nop(), nil)

	urls, err := svc.UploadBatch(context.Background(), batch("a.png", "b.png", "c.png"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpload))
	assert.Nil(t, urls)
}

func TestUploadBatchValidation(t *testing.T) {
	host := &fakeHost{}
	svc := NewService(host, Options{MaxBytes: 16}, logger.Nop(), nil)
	ctx := context.Background()

	_, err := svc.UploadBatch(ctx, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UploadBatch(ctx, batch("big.png"))
	require.True(t, apperr.Is(err, apperr.KindValidation))
	e, _ := apperr.As(err)
	assert.Equal(t, ErrTooLarge.Error(), e.Fields["big.png"])

	svc = NewService(host, Options{}, logger.Nop(), nil)
	_, err = svc.UploadBatch(ctx, []File{{Name: "notes.txt", Data: []byte("hello world")}})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	e, _ = apperr.As(err)
	assert.Equal(t, ErrNotImage.Error(), e.Fields["notes.txt"])

	assert.Empty(t, host.calls)
}

// ---- handler ----

func multipartBody(t *testing.T, files map[string][]byte, order []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range order {
		fw, err := mw.CreateFormFile(formField, name)
		require.NoError(t, err)
		_, err = fw.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImagesHandler(t *testing.T) {
	svc := NewService(&fakeHost{}, Options{}, logger.Nop(), nil)
	r := chi.NewRouter()
	RegisterAdminRoutes(r, svc, 0, logger.Nop())

	body, ct := multipartBody(t, map[string][]byte{"x.png": pngBytes, "y.png": pngBytes}, []string{"x.png", "y.png"})
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"https://img.example/x.png","https://img.example/y.png"`)
}

func TestUploadImagesHandlerErrors(t *testing.T) {
	svc := NewService(&fakeHost{failName: "x.png"}, Options{}, logger.Nop(), nil)
	r := chi.NewRouter()
	RegisterAdminRoutes(r, svc, 0, logger.Nop())

	body, ct := multipartBody(t, map[string][]byte{"x.png": pngBytes}, []string{"x.png"})
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/images", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body, ct = multipartBody(t, nil, nil)
	req = httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", ct)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
}
