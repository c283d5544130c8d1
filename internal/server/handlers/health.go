package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"playlist-server/internal/dataset"
	"playlist-server/internal/shared/response"
)

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp string        `json:"timestamp"`
	Dataset   DatasetHealth `json:"dataset"`
	Database  string        `json:"database,omitempty"`
	Redis     string        `json:"redis"`
}

type DatasetHealth struct {
	Source   string `json:"source"`
	Missions int    `json:"missions"`
	Planets  int    `json:"planets"`
	Issues   int    `json:"issues"`
}

// Pinger is satisfied by the database and redis connections
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	datasets *dataset.Service
	source   string
	db       Pinger
	redis    func(ctx context.Context) error
}

// NewHealthHandler builds the health endpoint. db and redis may be nil when
// the dataset lives in a file or playlists are kept in memory.
func NewHealthHandler(datasets *dataset.Service, source string, db Pinger, redis func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{datasets: datasets, source: source, db: db, redis: redis}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Redis:     "disabled",
	}

	_ = h.datasets.View(func(ds *dataset.Dataset) error {
		resp.Dataset = DatasetHealth{
			Source:   h.source,
			Missions: len(ds.Missions),
			Planets:  len(ds.Planets),
			Issues:   len(ds.Check()),
		}
		return nil
	})

	if h.db != nil {
		resp.Database = "connected"
		if err := h.db.PingContext(ctx); err != nil {
			logger.Warn("Database ping failed", "error", err)
			resp.Database = "disconnected"
			resp.Status = "degraded"
		}
	}

	if h.redis != nil {
		resp.Redis = "connected"
		if err := h.redis(ctx); err != nil {
			logger.Warn("Redis ping failed", "error", err)
			resp.Redis = "disconnected"
			resp.Status = "degraded"
		}
	}

	response.Success(w, http.StatusOK, resp)
}
