package resend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"refugio-adopciones/internal/domain/adoption"
	"refugio-adopciones/internal/platform/httpclient"
)

var (
	ErrResendNotConfigured = errors.New("resend client not configured")
)

const DefaultBaseURL = "https://api.resend.com"

type Config struct {
	BaseURL string
	APIKey  string
	From    string

	Timeout time.Duration
}

// Client manda emails transaccionales vía la API de Resend.
// Implementa adoption.Sender.
type Client struct {
	http   *httpclient.Client
	apiKey string
	from   string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	hc, err := httpclient.New(base,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithHeader("Authorization", "Bearer "+apiKey),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		apiKey: apiKey,
		from:   strings.TrimSpace(cfg.From),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != "" && c.from != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// UpstreamError: Error() es el mensaje que devolvió Resend, sin adornos.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string { return e.Message }

// Send hace un único POST /emails. Sin reintentos.
func (c *Client) Send(ctx context.Context, msg adoption.Message) (json.RawMessage, error) {
	if !c.IsConfigured() {
		return nil, ErrResendNotConfigured
	}

	raw, err := c.http.Do(ctx, httpclient.Call{
		Method: http.MethodPost,
		Path:   "/emails",
		Body: sendRequest{
			From:    c.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
		},
	})
	if err != nil {
		var he *httpclient.StatusError
		if errors.As(err, &he) {
			return nil, &UpstreamError{StatusCode: he.StatusCode, Message: he.Message()}
		}
		return nil, err
	}

	if !json.Valid(raw) {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "resend: invalid json response"}
	}
	return json.RawMessage(raw), nil
}
