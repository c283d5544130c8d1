package server

import (
	"log/slog"
	"net/http"

	"playlist-server/internal/dataset"
	datasetHandlers "playlist-server/internal/dataset/handlers"
	"playlist-server/internal/middleware"
	"playlist-server/internal/playlist"
	playlistHandlers "playlist-server/internal/playlist/handlers"
	serverHandlers "playlist-server/internal/server/handlers"
)

type Routes struct {
	datasetService  *dataset.Service
	playlistService *playlist.Service
	health          *serverHandlers.HealthHandler
	rateLimiter     *middleware.RateLimiter
	defaultDuration int
	frontendURL     string
}

func NewRoutes(datasetService *dataset.Service, playlistService *playlist.Service, health *serverHandlers.HealthHandler, rateLimiter *middleware.RateLimiter, defaultDuration int, frontendURL string) *Routes {
	return &Routes{
		datasetService:  datasetService,
		playlistService: playlistService,
		health:          health,
		rateLimiter:     rateLimiter,
		defaultDuration: defaultDuration,
		frontendURL:     frontendURL,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	datasetHandler := datasetHandlers.NewDatasetHandler(r.datasetService)
	playlistHandler := playlistHandlers.NewPlaylistHandler(r.playlistService, r.defaultDuration)
	eventsHandler := datasetHandlers.NewEventsHandler(r.datasetService, r.frontendURL)

	mux.Handle("/api/server/health", r.health)

	// Generator endpoints
	mux.Handle("/api/playlists", r.rateLimiter.Middleware(http.HandlerFunc(playlistHandler.Generate)))
	mux.Handle("/api/playlists/shared/{token}", r.rateLimiter.Middleware(http.HandlerFunc(playlistHandler.Shared)))
	mux.HandleFunc("/api/playlists/{id}", playlistHandler.Get)
	mux.HandleFunc("/api/filters", datasetHandler.Filters)

	// Editor endpoints
	mux.HandleFunc("/api/dataset", datasetHandler.Document)
	mux.HandleFunc("/api/dataset/issues", datasetHandler.Issues)
	mux.Handle("/api/dataset/events", eventsHandler)
	mux.HandleFunc("/api/dataset/{kind}/{id}", datasetHandler.Delete)
	mux.HandleFunc("/api/mission-types", datasetHandler.CreateMissionType)
	mux.HandleFunc("/api/systems", datasetHandler.CreateSystem)
	mux.HandleFunc("/api/missions", datasetHandler.CreateMission)
	mux.HandleFunc("/api/missions/{id}", datasetHandler.UpdateMission)
	mux.HandleFunc("/api/missions/{id}/toggle", datasetHandler.ToggleMission)
	mux.HandleFunc("/api/planets", datasetHandler.Planets)
	mux.HandleFunc("/api/planets/{id}", datasetHandler.UpdatePlanet)
	mux.HandleFunc("/api/links", datasetHandler.Links)

	logger.Info("Routes configured successfully",
		"generator_endpoints", []string{"/api/playlists", "/api/playlists/{id}", "/api/playlists/shared/{token}", "/api/filters"},
		"editor_endpoints", []string{"/api/dataset", "/api/dataset/issues", "/api/dataset/events", "/api/dataset/{kind}/{id}", "/api/mission-types", "/api/systems", "/api/missions", "/api/planets", "/api/links"},
	)

	return mux
}
