package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"refugio-adopciones/internal/adapters/auth/jwtverifier"
	"refugio-adopciones/internal/config"
	"refugio-adopciones/internal/domain/adoption"
	"refugio-adopciones/internal/middleware"
	"refugio-adopciones/internal/router"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = "admin-1"

type recordSpy struct {
	records []adoption.Record
}

func (s *recordSpy) Record(ctx context.Context, rec adoption.Record) error {
	s.records = append(s.records, rec)
	return nil
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.Config == nil {
		cfg := &config.Config{CascadeDelete: true}
		cfg.HTTP.MaxUploadMB = 1
		cfg.Auth.AdminUserIDs = []string{adminID}
		cfg.Auth.DevAllowAdmins = true
		cfg.Shelter.Name = "Refugio Municipal de Curicó"
		cfg.Shelter.Address = "Carmen 1290, Curicó"
		opts.Config = cfg
	}
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, userID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(middleware.DebugUserHeader, userID)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out
}

type dogJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func names(t *testing.T, body []byte) []string {
	t.Helper()
	var items []dogJSON
	require.NoError(t, json.Unmarshal(body, &items))
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Name)
	}
	return out
}

func TestHTTP_EndToEnd_AdoptedDogLeavesCatalog(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, http.MethodPost, "/admin/dogs", adminID, map[string]any{
		"name":        "Rex",
		"breed":       "Mestizo Pastor",
		"age":         "4 años",
		"size":        "Grande",
		"gender":      "Macho",
		"story":       "Llegó desde la ribera del Guaiquillo.",
		"personality": []string{"Protector", "Tranquilo"},
		"status":      "available",
	})
	require.Equal(t, http.StatusCreated, st, string(body))

	var rex dogJSON
	require.NoError(t, json.Unmarshal(body, &rex))
	require.NotEmpty(t, rex.ID)

	st, body = doReq(t, ts.URL, http.MethodGet, "/dogs", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, names(t, body), "Rex")

	st, body = doReq(t, ts.URL, http.MethodPatch, "/admin/dogs/"+rex.ID, adminID, map[string]any{"status": "adopted"})
	require.Equal(t, http.StatusOK, st, string(body))

	st, body = doReq(t, ts.URL, http.MethodGet, "/dogs", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.NotContains(t, names(t, body), "Rex")

	st, body = doReq(t, ts.URL, http.MethodGet, "/admin/dogs", adminID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, names(t, body), "Rex")

	st, body = doReq(t, ts.URL, http.MethodGet, "/admin/dogs/"+rex.ID, adminID, nil)
	require.Equal(t, http.StatusOK, st)
	var got dogJSON
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "adopted", got.Status)

	// el perfil público de un adoptado no existe
	st, _ = doReq(t, ts.URL, http.MethodGet, "/dogs/"+rex.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, body = doReq(t, ts.URL, http.MethodGet, "/admin/stats", adminID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"total":1,"available":0,"adopted":1,"recent":1}`, string(body))
}

func TestHTTP_UnknownDogIsNotFound(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, _ := doReq(t, ts.URL, http.MethodGet, "/dogs/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, ts.URL, http.MethodDelete, "/admin/dogs/does-not-exist", adminID, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_AdminRequiresRole(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, _ := doReq(t, ts.URL, http.MethodGet, "/admin/dogs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	st, _ = doReq(t, ts.URL, http.MethodPost, "/admin/dogs", "visitor-1", map[string]any{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, st)

	st, _ = doReq(t, ts.URL, http.MethodGet, "/admin/stats", adminID, nil)
	assert.Equal(t, http.StatusOK, st)
}

func TestHTTP_Me(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, _ := doReq(t, ts.URL, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	st, body := doReq(t, ts.URL, http.MethodGet, "/me", adminID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"user_id":"admin-1","role":"admin","is_admin":true}`, string(body))

	st, body = doReq(t, ts.URL, http.MethodGet, "/me", "visitor-1", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"user_id":"visitor-1","role":"member","is_admin":false}`, string(body))
}

func TestHTTP_PreflightAlwaysOK(t *testing.T) {
	ts := newServer(t, router.Options{})

	for _, path := range []string{"/send-adoption-info", "/admin/dogs", "/no-such-route"} {
		req, err := http.NewRequest(http.MethodOptions, ts.URL+path, strings.NewReader(`{"garbage":`))
		require.NoError(t, err)
		req.Header.Set("Access-Control-Request-Method", "POST")

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(res.Body)
		_ = res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Empty(t, body, path)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"), path)
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", res.Header.Get("Access-Control-Allow-Headers"), path)
	}
}

func TestHTTP_SendAdoptionInfo_RecordMode(t *testing.T) {
	spy := &recordSpy{}
	ts := newServer(t, router.Options{Recorder: spy})

	st, body := doReq(t, ts.URL, http.MethodPost, "/send-adoption-info", "", map[string]any{
		"name":           "Camila",
		"email":          "camila@example.cl",
		"shelterAddress": "Carmen 1290, Curicó",
	})
	require.Equal(t, http.StatusOK, st, string(body))
	assert.JSONEq(t, `{"success":true,"message":"`+adoption.SuccessMessage+`"}`, string(body))
	require.Len(t, spy.records, 1)
	assert.Equal(t, "camila@example.cl", spy.records[0].Email)

	st, body = doReq(t, ts.URL, http.MethodPost, "/send-adoption-info", "", map[string]any{"name": "Camila"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Contains(t, string(body), "error")
	assert.Len(t, spy.records, 1)

	// CORS también en respuestas de error
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/send-adoption-info", strings.NewReader("{"))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestHTTP_HealthMetricsAndDocs(t *testing.T) {
	ts := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, ts.URL, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "refugio_http_requests_total")

	st, body = doReq(t, ts.URL, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/send-adoption-info")
}

func TestHTTP_VerifierModeIgnoresDebugHeader(t *testing.T) {
	const secret = "super-secret-jwt-token-with-at-least-32-characters"
	ts := newServer(t, router.Options{AuthVerifier: jwtverifier.New(secret)})

	// el header con el id del admin no abre nada sin token
	st, _ := doReq(t, ts.URL, http.MethodGet, "/admin/dogs", adminID, nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": adminID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/admin/dogs", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
