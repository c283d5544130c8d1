package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"playlist-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status  int
		kind    string
		message string
	}{
		{"not found", errors.NotFoundf("playlist %s not found", "abc"), http.StatusNotFound, "not_found", "playlist abc not found"},
		{"validation", errors.WrapValidation("invalid JSON in request body", fmt.Errorf("unexpected EOF")), http.StatusBadRequest, "validation", "invalid JSON in request body: unexpected EOF"},
		{"method", errors.MethodNotAllowed("PATCH"), http.StatusMethodNotAllowed, "method_not_allowed", "method PATCH not allowed"},
		{"rate limited", errors.RateLimited("slow down"), http.StatusTooManyRequests, "rate_limited", "slow down"},
		{"external hides cause", errors.WrapExternal("redis unavailable", fmt.Errorf("dial tcp 10.0.0.3:6379")), http.StatusServiceUnavailable, "external", "redis unavailable"},
		{"internal hides cause", errors.WrapInternal("failed to encode dataset", fmt.Errorf("bad utf8")), http.StatusInternalServerError, "internal", "failed to encode dataset"},
		{"plain", fmt.Errorf("pq: password authentication failed"), http.StatusInternalServerError, "internal", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/api/playlists", nil), logger, tt.err)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.status, body.Code)
		})
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id": "abc"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Success(rec, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
