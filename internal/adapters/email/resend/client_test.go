package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"refugio-adopciones/internal/domain/adoption"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Config{APIKey: "re_test", From: "Refugio <onboarding@resend.dev>"})
	require.NoError(t, err)

	httpmock.ActivateNonDefault(c.http.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestSend_OK_ReturnsPayloadVerbatim(t *testing.T) {
	c := newMockedClient(t)

	var got sendRequest
	httpmock.RegisterResponder(http.MethodPost, DefaultBaseURL+"/emails",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Authorization") != "Bearer re_test" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, `{"message":"Missing API key"}`), nil
			}
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusOK, `{"id":"4ef9a417-02e9-4d39-ad75-9611e0fcc33c"}`), nil
		})

	payload, err := c.Send(context.Background(), adoption.Message{
		To:      "camila@example.cl",
		Subject: "Información de adopción",
		HTML:    "<p>hola</p>",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"4ef9a417-02e9-4d39-ad75-9611e0fcc33c"}`, string(payload))

	assert.Equal(t, []string{"camila@example.cl"}, got.To)
	assert.Equal(t, "Refugio <onboarding@resend.dev>", got.From)
	assert.Equal(t, "<p>hola</p>", got.HTML)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSend_UpstreamErrorKeepsMessage(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, DefaultBaseURL+"/emails",
		httpmock.NewStringResponder(http.StatusForbidden,
			`{"statusCode":403,"message":"The resend.dev domain is not verified","name":"validation_error"}`))

	_, err := c.Send(context.Background(), adoption.Message{To: "a@b.cl"})
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.StatusCode)
	assert.Equal(t, "The resend.dev domain is not verified", err.Error())
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "no retry")
}

func TestSend_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = c.Send(context.Background(), adoption.Message{To: "a@b.cl"})
	assert.ErrorIs(t, err, ErrResendNotConfigured)
}

// El handler de adopción devuelve el texto de upstream en el 500.
func TestSend_WiredIntoAdoptionService(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, DefaultBaseURL+"/emails",
		httpmock.NewStringResponder(http.StatusUnprocessableEntity, `{"message":"Invalid to field"}`))

	svc := adoption.NewService(nil, adoption.WithSender(c))
	_, err := svc.Submit(context.Background(), adoption.Request{
		Name: "Camila", Email: "camila@example.cl", ShelterAddress: "Carmen 1290",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid to field", err.Error())
}
