package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"playlist-server/internal/dataset"
	"playlist-server/internal/playlist"
	"playlist-server/internal/shared/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missionsDocument = `{
	"missionTypes": {"type-1": {"name": "Investigation"}},
	"subsystems": {
		"sub-scan": {"parentId": "type-1", "name": "Scan Wreck", "description": "", "time": 20, "faction": "UEE", "alignment": ["legal"], "disabled": false},
		"sub-smuggle": {"parentId": "type-1", "name": "Smuggle Goods", "description": "", "time": 15, "faction": "Nine Tails", "alignment": ["illegal"], "disabled": false}
	},
	"systems": {"sys-stanton": {"name": "Stanton"}},
	"planets": {
		"pla-a": {"parentId": "sys-stanton", "name": "Planet A"},
		"pla-b": {"parentId": "sys-stanton", "name": "Planet B"}
	},
	"links": [
		{"from": "sub-scan", "to": "pla-a"},
		{"from": "sub-smuggle", "to": "pla-b"}
	]
}`

const shareSecret = "0123456789abcdef0123456789abcdef"

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	path := filepath.Join(t.TempDir(), "missions.json")
	require.NoError(t, os.WriteFile(path, []byte(missionsDocument), 0o644))

	datasets := dataset.NewService(dataset.NewFileStore(path, logger), logger)
	require.NoError(t, datasets.Reload(context.Background()))

	service := playlist.NewService(
		datasets,
		playlist.NewMemoryStore(time.Hour),
		playlist.NewShareSigner(shareSecret, time.Hour),
		playlist.DefaultTravelConfig(),
		600,
		logger,
	)
	handler := NewPlaylistHandler(service, 40)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/playlists", handler.Generate)
	mux.HandleFunc("/api/playlists/{id}", handler.Get)
	mux.HandleFunc("/api/playlists/shared/{token}", handler.Shared)
	return mux
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestGenerate(t *testing.T) {
	mux := newTestMux(t)

	rec := serve(mux, http.MethodPost, "/api/playlists", `{"alignment": "legal", "seed": 11}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[playlist.Response](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.ShareToken)
	assert.Equal(t, int64(11), resp.Seed)
	assert.Equal(t, 40, resp.Request.Duration, "default duration applies")
	assert.Equal(t, playlist.Any, resp.Request.System)
	require.Len(t, resp.Result.Entries, 2)
	for _, e := range resp.Result.Entries {
		assert.Equal(t, "Scan Wreck", e.Mission.Name)
		assert.Equal(t, 0, e.TravelTime)
	}
	assert.Equal(t, 40, resp.Result.TotalTime)

	t.Run("fetch by id", func(t *testing.T) {
		rec := serve(mux, http.MethodGet, "/api/playlists/"+resp.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		got := decode[playlist.Response](t, rec)
		assert.Equal(t, resp.Result, got.Result)
	})

	t.Run("fetch by share token", func(t *testing.T) {
		rec := serve(mux, http.MethodGet, "/api/playlists/shared/"+resp.ShareToken, "")
		require.Equal(t, http.StatusOK, rec.Code)

		got := decode[playlist.Response](t, rec)
		assert.Equal(t, resp.Result, got.Result)
	})
}

func TestGenerateEmptyPlaylist(t *testing.T) {
	mux := newTestMux(t)

	rec := serve(mux, http.MethodPost, "/api/playlists", `{"duration": 60, "system": "Pyro"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[playlist.Response](t, rec)
	assert.True(t, resp.Rendered.Empty)
	assert.Equal(t, playlist.EmptyMessage, resp.Rendered.Message)
}

func TestGenerateErrors(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
		kind   string
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed, "method_not_allowed"},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest, "validation"},
		{"negative duration", http.MethodPost, `{"duration": -5}`, http.StatusBadRequest, "validation"},
		{"too long", http.MethodPost, `{"duration": 1000}`, http.StatusBadRequest, "validation"},
		{"bad alignment", http.MethodPost, `{"alignment": "chaotic"}`, http.StatusBadRequest, "validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, tt.method, "/api/playlists", tt.body)
			require.Equal(t, tt.status, rec.Code)

			body := decode[response.ErrorResponse](t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.status, body.Code)
		})
	}
}

func TestGetMissing(t *testing.T) {
	mux := newTestMux(t)

	rec := serve(mux, http.MethodGet, "/api/playlists/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(mux, http.MethodGet, "/api/playlists/shared/garbage", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
