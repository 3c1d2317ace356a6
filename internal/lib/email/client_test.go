package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo any      `json:"reply_to"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	provider := httptest.NewServer(handler)
	t.Cleanup(provider.Close)

	cfg := config.Default()
	cfg.Email = config.EmailConfig{
		APIKey: "re_test",
		From:   "Tacomemo <contact@example.com>",
		To:     "owner@example.com",
	}

	logger := zerolog.Nop()
	c := NewClient(cfg, &logger)

	base, err := url.Parse(provider.URL + "/")
	require.NoError(t, err)
	c.client.BaseURL = base

	return c
}

func TestRender_Contact(t *testing.T) {
	body, err := Render(TemplateContact, ContactMessage{
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: "Hola",
		Message: "Line one\nLine two",
	})

	require.NoError(t, err)
	assert.Equal(t, "Nom: Ana\nE-mail: ana@example.com\n\nMessage:\nLine one\nLine two", body)
}

func TestRender_DoesNotEscape(t *testing.T) {
	body, err := Render(TemplateContact, ContactMessage{Name: "A & B", Message: "<b>hi</b>"})

	require.NoError(t, err)
	assert.Contains(t, body, "Nom: A & B")
	assert.Contains(t, body, "<b>hi</b>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)

	assert.Error(t, err)
}

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		_, err := Render(name, data)
		assert.NoError(t, err, name)
	}
}

func TestSendContactEmail(t *testing.T) {
	var got sentEmail
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	err := c.SendContactEmail(context.Background(), ContactMessage{
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: "Reserva",
		Message: "Mesa para dos",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Tacomemo <contact@example.com>", got.From)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "Reserva", got.Subject)
	assert.Equal(t, "Nom: Ana\nE-mail: ana@example.com\n\nMessage:\nMesa para dos", got.Text)
	assert.Nil(t, got.ReplyTo)
}

func TestSendContactEmail_ProviderFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":500,"name":"internal_server_error","message":"boom"}`))
	})

	err := c.SendContactEmail(context.Background(), ContactMessage{Subject: "x"})

	assert.Error(t, err)
}
