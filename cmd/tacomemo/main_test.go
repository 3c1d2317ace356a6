package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(context.Background(), append([]string{"tacomemo"}, args...))
	return out.String(), err
}

func TestEmailPreview(t *testing.T) {
	out, err := runApp(t, "email", "preview", "contact")

	require.NoError(t, err)
	assert.Contains(t, out, "Nom: Sofía Hernández")
	assert.Contains(t, out, "E-mail: sofia@example.com")
}

func TestEmailPreview_UnknownTemplate(t *testing.T) {
	_, err := runApp(t, "email", "preview", "welcome")

	assert.ErrorContains(t, err, `no preview data for template "welcome"`)
}

func TestImagesList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TACOMEMO_DATABASE__PATH", dir+"/carousel.db")
	t.Setenv("TACOMEMO_EMAIL__API_KEY", "re_test")
	t.Setenv("TACOMEMO_EMAIL__FROM", "site@example.com")
	t.Setenv("TACOMEMO_EMAIL__TO", "owner@example.com")

	out, err := runApp(t, "images", "list", "--json")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}
