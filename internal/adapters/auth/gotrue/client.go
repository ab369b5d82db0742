package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"refugio-adopciones/internal/platform/httpclient"
	"refugio-adopciones/internal/ports/auth"
)

var (
	ErrGoTrueNotConfigured = errors.New("gotrue client not configured")
	ErrGoTrueUnauthorized  = errors.New("gotrue unauthorized")
	ErrGoTrueUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue (el auth server que usa el panel de admin).
type Config struct {
	BaseURL string
	APIKey  string // anon key, va en el header "apikey"

	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

// NewClient sin BaseURL devuelve un cliente no configurado (GetUser => ErrGoTrueNotConfigured).
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return &Client{apiKey: apiKey}, nil
	}
	hc, err := httpclient.New(cfg.BaseURL,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithHeader("apikey", apiKey),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.apiKey != ""
}

// userResponse es lo que devuelve GET /auth/v1/user (solo lo que usamos).
type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"` // "authenticated", no es el rol del refugio
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

// GetUser valida el access token contra GoTrue y trae el usuario.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrGoTrueNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrGoTrueUnauthorized
	}

	var out userResponse
	err := c.http.DoJSON(ctx, httpclient.Call{
		Method: http.MethodGet,
		Path:   "/auth/v1/user",
		Bearer: token,
	}, &out)
	if err != nil {
		var he *httpclient.StatusError
		if errors.As(err, &he) {
			switch he.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return auth.Claims{}, ErrGoTrueUnauthorized
			default:
				return auth.Claims{}, fmt.Errorf("%w: status=%d: %s", ErrGoTrueUpstream, he.StatusCode, he.Message())
			}
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrGoTrueUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("gotrue response missing id")
	}

	return auth.Claims{
		UserID: out.ID,
		Email:  strings.TrimSpace(out.Email),
		Role:   auth.Role(strings.TrimSpace(out.AppMetadata.Role)),
	}, nil
}
