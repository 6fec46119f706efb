package images

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyBatch = errors.New("no images in batch")
	ErrTooLarge   = errors.New("image exceeds size limit")
	ErrNotImage   = errors.New("file is not an image")
)

// File es un archivo crudo listo para subir.
type File struct {
	Name string
	Data []byte
}

// ImageHost sube un archivo y devuelve su URL pública.
type ImageHost interface {
	Upload(ctx context.Context, f File) (string, error)
}

type Options struct {
	MaxBytes    int64
	Concurrency int
}

type Service struct {
	host ImageHost
	opts Options
	log  logger.Logger
	m    *metrics.Metrics
}

func NewService(host ImageHost, opts Options, log logger.Logger, m *metrics.Metrics) *Service {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{host: host, opts: opts, log: log, m: m}
}

// UploadBatch sube todos los archivos en paralelo. Las URLs respetan el orden
// de entrada; si falla uno, falla el lote completo y no se devuelve ninguna URL.
func (s *Service) UploadBatch(ctx context.Context, files []File) ([]string, error) {
	const op = "images.upload"

	if len(files) == 0 {
		return nil, apperr.Validation(op, ErrEmptyBatch.Error(), map[string]string{"images": "is required"})
	}
	if s.host == nil {
		return nil, apperr.Upload(op, errors.New("image host not configured"))
	}

	fields := map[string]string{}
	for i, f := range files {
		if err := s.check(f); err != nil {
			fields[fieldName(i, f)] = err.Error()
		}
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(op, "invalid images", fields)
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			u, err := s.host.Upload(gctx, f)
			s.m.IncUpload(err == nil)
			if err != nil {
				return fmt.Errorf("%s: %w", fieldName(i, f), err)
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn("image batch failed", map[string]any{
			"files": len(files),
			"error": err.Error(),
		})
		return nil, apperr.Upload(op, err)
	}

	s.log.Info("image batch uploaded", map[string]any{"files": len(files)})
	return urls, nil
}

func (s *Service) check(f File) error {
	if len(f.Data) == 0 {
		return ErrNotImage
	}
	if s.opts.MaxBytes > 0 && int64(len(f.Data)) > s.opts.MaxBytes {
		return ErrTooLarge
	}
	mt := mimetype.Detect(f.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return ErrNotImage
	}
	return nil
}

func fieldName(i int, f File) string {
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	return fmt.Sprintf("images[%d]", i)
}
