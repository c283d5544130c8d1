package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"playlist-server/internal/playlist"
	"playlist-server/internal/shared/errors"
	"playlist-server/internal/shared/response"
)

type PlaylistHandler struct {
	service         *playlist.Service
	defaultDuration int
}

func NewPlaylistHandler(service *playlist.Service, defaultDuration int) *PlaylistHandler {
	return &PlaylistHandler{service: service, defaultDuration: defaultDuration}
}

func (h *PlaylistHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "generate_playlist")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	req := playlist.NamedRequest{
		Alignment:   string(playlist.AlignmentAny),
		MissionType: playlist.Any,
		System:      playlist.Any,
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	if req.Duration == 0 {
		req.Duration = h.defaultDuration
	}

	resp, err := h.service.Generate(ctx, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	status := http.StatusOK
	if resp.ID != "" {
		status = http.StatusCreated
	}
	response.Success(w, status, resp)
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_playlist")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("playlist ID is required"))
		return
	}

	resp, err := h.service.Get(ctx, id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, resp)
}

func (h *PlaylistHandler) Shared(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_shared_playlist")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token := r.PathValue("token")
	if token == "" {
		response.Error(w, r, logger, errors.Validation("share token is required"))
		return
	}

	resp, err := h.service.Shared(ctx, token)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, resp)
}
