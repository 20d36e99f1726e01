package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats int

func (that fixedStats) LastLoaded() int {
	return int(that)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "applause.mp3"), []byte("ID3-applause"), 0o600))

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	server := httptest.NewServer(New(logger, dir, "/assets", fixedStats(15)).Handler())
	t.Cleanup(server.Close)

	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServer_Ping(t *testing.T) {
	server := newServer(t)

	status, body := get(t, server.URL+"/ping")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)
}

func TestServer_Assets(t *testing.T) {
	server := newServer(t)

	t.Run("Serves a clip", func(t *testing.T) {
		status, body := get(t, server.URL+"/assets/applause.mp3")

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ID3-applause", body)
	})

	t.Run("Missing clip", func(t *testing.T) {
		status, _ := get(t, server.URL+"/assets/warning.mp3")

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestServer_QuestionStats(t *testing.T) {
	server := newServer(t)

	status, body := get(t, server.URL+"/questions/stats")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":15}`, body)
}
