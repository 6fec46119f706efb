package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-adoption/internal/domain/images"
	"pet-adoption/internal/platform/httpclient"
)

const DefaultBaseURL = "https://api.cloudinary.com"

var ErrNotConfigured = errors.New("cloudinary: cloud name and upload preset are required")

type Config struct {
	CloudName    string
	UploadPreset string
	BaseURL      string
	Timeout      time.Duration
}

// Client sube imágenes con un upload preset sin firma.
type Client struct {
	http   *httpclient.Client
	path   string
	preset string
}

var _ images.ImageHost = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	cloud := strings.TrimSpace(cfg.CloudName)
	preset := strings.TrimSpace(cfg.UploadPreset)
	if cloud == "" || preset == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Client{
		http:   hc,
		path:   "/v1_1/" + url.PathEscape(cloud) + "/image/upload",
		preset: preset,
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) Upload(ctx context.Context, f images.File) (string, error) {
	var out uploadResponse
	err := c.http.PostMultipart(ctx, c.path,
		map[string]string{"upload_preset": c.preset},
		httpclient.FilePart{Field: "file", Filename: f.Name, Content: bytes.NewReader(f.Data)},
		&out,
	)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %q: %w", f.Name, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("cloudinary upload %q: %s", f.Name, out.Error.Message)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %q: empty secure_url", f.Name)
	}
	return out.SecureURL, nil
}
