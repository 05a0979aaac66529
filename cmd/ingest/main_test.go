package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ashureev/onboard-assistant/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestWritesKnowledgeFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title> Acme   Advisory </title></head>
<body><p>We help   businesses grow.</p><div>ignored</div><p>Tax credits.</p></body></html>`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "data", "knowledge.json")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--url", srv.URL, "--out", out, "--timeout", "2s"})
	require.NoError(t, cmd.Execute())

	kb, err := knowledge.Load(out)
	require.NoError(t, err)
	require.Equal(t, 1, kb.Len())
	rec := kb.Records()[0]
	assert.Equal(t, srv.URL, rec.URL)
	assert.Equal(t, "Acme Advisory", rec.Title)
	assert.Equal(t, "We help businesses grow. Tax credits.", rec.Content)
}

func TestIngestFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "knowledge.json")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--url", srv.URL, "--out", out})

	err := cmd.Execute()
	require.Error(t, err)

	var fetchErr *knowledge.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.NoFileExists(t, out)
}

func TestRootCmdDefaults(t *testing.T) {
	cmd := newRootCmd()

	url, err := cmd.Flags().GetString("url")
	require.NoError(t, err)
	assert.Equal(t, knowledge.DefaultURL, url)

	out, err := cmd.Flags().GetString("out")
	require.NoError(t, err)
	assert.Equal(t, knowledge.DefaultPath, out)
}
