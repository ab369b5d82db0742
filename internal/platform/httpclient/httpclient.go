package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20 // 1MB
)

// Client es el cliente HTTP de los adapters upstream (Resend, GoTrue).
// Habla JSON, una llamada por operación y sin reintentos.
type Client struct {
	hc      *http.Client
	baseURL string
	headers http.Header
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// WithHeader agrega un header fijo (apikey, Authorization del servicio, etc.).
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.headers.Set(key, value)
		}
	}
}

// New exige baseURL absoluta; las Call usan paths relativos a ella.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("httpclient: base url required")
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("httpclient: invalid base url %q", baseURL)
	}

	c := &Client{
		hc:      &http.Client{Timeout: DefaultTimeout},
		baseURL: baseURL,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPClient expone el *http.Client (los tests lo enganchan con httpmock).
func (c *Client) HTTPClient() *http.Client { return c.hc }

func (c *Client) BaseURL() string { return c.baseURL }

// Call describe un request. Body nil => sin body.
type Call struct {
	Method string
	Path   string
	Bearer string // token del usuario; pisa un Authorization fijo
	Body   any
}

// StatusError es una respuesta no-2xx del upstream.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Message saca el texto legible del body: "message", "error_description" o "error".
// Si no es JSON devuelve el body crudo.
func (e *StatusError) Message() string {
	var payload struct {
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil {
		for _, m := range []string{payload.Message, payload.ErrorDescription, payload.Error} {
			if m = strings.TrimSpace(m); m != "" {
				return m
			}
		}
	}
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.StatusCode)
}

// Do ejecuta la llamada y devuelve el body 2xx tal cual.
// No-2xx => *StatusError.
func (c *Client) Do(ctx context.Context, call Call) ([]byte, error) {
	if c == nil || c.hc == nil {
		return nil, errors.New("httpclient: nil client")
	}

	path := strings.TrimSpace(call.Path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if call.Body != nil {
		b, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := strings.TrimSpace(call.Bearer); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s %s: %w", call.Method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, nil
}

// DoJSON es Do + decode en out.
func (c *Client) DoJSON(ctx context.Context, call Call, out any) error {
	raw, err := c.Do(ctx, call)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}
