package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"playlist-server/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

type staticStore struct{}

func (staticStore) Load(ctx context.Context) (*dataset.Dataset, error) {
	ds := dataset.New()
	ds.Systems["sys-stanton"] = dataset.System{Name: "Stanton"}
	ds.Planets["pla-a"] = dataset.Planet{ParentID: "sys-stanton", Name: "Hurston"}
	ds.Planets["pla-b"] = dataset.Planet{ParentID: "sys-gone", Name: "Lost"}
	return ds, nil
}

func (staticStore) Save(ctx context.Context, ds *dataset.Dataset) error {
	return nil
}

func newDatasets(t *testing.T) *dataset.Service {
	t.Helper()
	svc := dataset.NewService(staticStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

func checkHealth(t *testing.T, h http.Handler) HealthResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthFileSource(t *testing.T) {
	resp := checkHealth(t, NewHealthHandler(newDatasets(t), "file", nil, nil))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "file", resp.Dataset.Source)
	assert.Equal(t, 2, resp.Dataset.Planets)
	assert.Equal(t, 1, resp.Dataset.Issues)
	assert.Empty(t, resp.Database)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestHealthDegraded(t *testing.T) {
	redisDown := func(ctx context.Context) error { return fmt.Errorf("connection refused") }

	resp := checkHealth(t, NewHealthHandler(newDatasets(t), "postgres", stubPinger{}, redisDown))

	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "connected", resp.Database)
	assert.Equal(t, "disconnected", resp.Redis)
}
