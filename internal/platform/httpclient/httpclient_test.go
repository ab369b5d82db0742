package httpclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAbsoluteBaseURL(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
	_, err = New("/relative")
	assert.Error(t, err)

	c, err := New("https://api.example.test/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", c.BaseURL())
}

func TestDo_HeadersAndStatusError(t *testing.T) {
	c, err := New("https://api.example.test", WithHeader("apikey", "anon"))
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, "https://api.example.test/things",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("apikey") != "anon" || req.Header.Get("Authorization") != "Bearer tok" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{"error_description":"missing auth"}`), nil
			}
			if req.Header.Get("Content-Type") != "application/json" {
				return httpmock.NewStringResponse(http.StatusBadRequest, "no json"), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"id":"t1"}`), nil
		})

	var out struct {
		ID string `json:"id"`
	}
	err = c.DoJSON(context.Background(), Call{Method: http.MethodPost, Path: "things", Bearer: "tok", Body: map[string]string{"a": "b"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t1", out.ID)

	_, err = c.Do(context.Background(), Call{Method: http.MethodPost, Path: "/things", Body: map[string]string{}})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "missing auth", se.Message())
}

func TestStatusError_Message(t *testing.T) {
	assert.Equal(t, "bad", (&StatusError{StatusCode: 400, Body: `{"message":"bad"}`}).Message())
	assert.Equal(t, "plain text", (&StatusError{StatusCode: 502, Body: "plain text"}).Message())
	assert.Equal(t, "Bad Gateway", (&StatusError{StatusCode: 502}).Message())
}
