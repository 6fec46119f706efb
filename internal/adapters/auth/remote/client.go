package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote identity provider not configured")
	ErrUpstream      = errors.New("remote identity provider error")
)

const (
	signupPath = "/v1/signup"
	loginPath  = "/v1/login"
	logoutPath = "/v1/logout"
	verifyPath = "/v1/tokens/verify"
)

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Client delega signup/login/logout/verify en un identity provider HTTP externo.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

var _ auth.Provider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionBody struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claimsBody struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (c *Client) SignUp(ctx context.Context, cr auth.Credentials) (auth.Session, error) {
	return c.authenticate(ctx, signupPath, cr)
}

func (c *Client) Login(ctx context.Context, cr auth.Credentials) (auth.Session, error) {
	return c.authenticate(ctx, loginPath, cr)
}

func (c *Client) Logout(ctx context.Context, token string) error {
	err := c.http.DoJSON(ctx, http.MethodPost, logoutPath, c.headers(token), nil, nil)
	if err != nil && httpclient.StatusCode(err) != http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}

// Verify confía en el provider: 401/403 => token inválido.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var out claimsBody
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, c.headers(token), map[string]string{"token": token}, &out)
	if err != nil {
		return auth.Claims{}, c.mapError(err, auth.ErrInvalidToken)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{UserID: out.UserID, Email: strings.TrimSpace(out.Email)}, nil
}

func (c *Client) authenticate(ctx context.Context, path string, cr auth.Credentials) (auth.Session, error) {
	var out sessionBody
	err := c.http.DoJSON(ctx, http.MethodPost, path, c.headers(""), credentialsBody{
		Email:    strings.TrimSpace(cr.Email),
		Password: cr.Password,
	}, &out)
	if err != nil {
		if httpclient.StatusCode(err) == http.StatusConflict {
			return auth.Session{}, auth.ErrEmailTaken
		}
		return auth.Session{}, c.mapError(err, auth.ErrInvalidCredentials)
	}
	if out.Token == "" || out.UserID == "" {
		return auth.Session{}, fmt.Errorf("%w: incomplete session response", ErrUpstream)
	}
	return auth.Session{
		Token:     out.Token,
		Claims:    auth.Claims{UserID: out.UserID, Email: out.Email},
		ExpiresAt: out.ExpiresAt,
	}, nil
}

func (c *Client) headers(token string) map[string]string {
	h := map[string]string{}
	if c.apiKey != "" {
		h[c.apiKeyHeader] = c.apiKey
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

func (c *Client) mapError(err error, unauthorized error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
		return unauthorized
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
