package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"playlist-server/internal/dataset"
	"playlist-server/internal/shared/errors"
	"playlist-server/internal/shared/response"
)

const (
	maxDocumentBytes = 10 << 20
	maxRecordBytes   = 1 << 16
)

type DatasetHandler struct {
	service *dataset.Service
}

func NewDatasetHandler(service *dataset.Service) *DatasetHandler {
	return &DatasetHandler{service: service}
}

type nameRequest struct {
	Name string `json:"name"`
}

type linkRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type toggleResponse struct {
	ID       string `json:"id"`
	Disabled bool   `json:"disabled"`
}

type linkResponse struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Added bool   `json:"added"`
}

type importResponse struct {
	MissionTypes int `json:"missionTypes"`
	Missions     int `json:"missions"`
	Systems      int `json:"systems"`
	Planets      int `json:"planets"`
	Links        int `json:"links"`
}

// Document serves GET (export) and PUT (import) on the whole mission graph
func (h *DatasetHandler) Document(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.export(w, r)
	case http.MethodPut:
		h.importDocument(w, r)
	default:
		response.Error(w, r, slog.With("handler", "dataset_document"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *DatasetHandler) export(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "export_dataset")

	data, err := h.service.Snapshot().Marshal()
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to encode dataset", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="missions.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *DatasetHandler) importDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "import_dataset")

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("failed to read request body", err))
		return
	}

	ds, err := dataset.Parse(data)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	if err := h.service.Import(ctx, ds); err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	logger.Info("Dataset imported", "missions", len(ds.Missions), "links", len(ds.Links))
	response.Success(w, http.StatusOK, importResponse{
		MissionTypes: len(ds.MissionTypes),
		Missions:     len(ds.Missions),
		Systems:      len(ds.Systems),
		Planets:      len(ds.Planets),
		Links:        len(ds.Links),
	})
}

func (h *DatasetHandler) Issues(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dataset_issues")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var issues []dataset.Issue
	_ = h.service.View(func(ds *dataset.Dataset) error {
		issues = ds.Check()
		return nil
	})

	if issues == nil {
		issues = []dataset.Issue{}
	}

	response.Success(w, http.StatusOK, issues)
}

func (h *DatasetHandler) Filters(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_filters")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var filters dataset.Filters
	_ = h.service.View(func(ds *dataset.Dataset) error {
		filters = ds.Filters()
		return nil
	})

	response.Success(w, http.StatusOK, filters)
}

func (h *DatasetHandler) CreateMissionType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_mission_type")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req nameRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}

	id, err := h.service.AddMissionType(ctx, req.Name)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *DatasetHandler) CreateSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_system")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req nameRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}

	id, err := h.service.AddSystem(ctx, req.Name)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *DatasetHandler) CreateMission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_mission")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var m dataset.Mission
	if !decodeBody(w, r, logger, &m) {
		return
	}

	id, err := h.service.PutMission(ctx, "", m)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *DatasetHandler) UpdateMission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "update_mission")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("mission ID is required"))
		return
	}

	var m dataset.Mission
	if !decodeBody(w, r, logger, &m) {
		return
	}

	if _, err := h.service.PutMission(ctx, id, m); err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusOK, createdResponse{ID: id})
}

func (h *DatasetHandler) ToggleMission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "toggle_mission")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	disabled, err := h.service.ToggleMission(ctx, id)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusOK, toggleResponse{ID: id, Disabled: disabled})
}

// Planets serves GET (summaries for the map view) and POST (create)
func (h *DatasetHandler) Planets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.planetSummaries(w, r)
	case http.MethodPost:
		h.createPlanet(w, r)
	default:
		response.Error(w, r, slog.With("handler", "planets"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *DatasetHandler) planetSummaries(w http.ResponseWriter, r *http.Request) {
	var summaries []dataset.PlanetSummary
	_ = h.service.View(func(ds *dataset.Dataset) error {
		summaries = ds.PlanetSummaries()
		return nil
	})

	if summaries == nil {
		summaries = []dataset.PlanetSummary{}
	}

	response.Success(w, http.StatusOK, summaries)
}

func (h *DatasetHandler) createPlanet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_planet")

	var p dataset.Planet
	if !decodeBody(w, r, logger, &p) {
		return
	}

	id, err := h.service.PutPlanet(ctx, "", p)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *DatasetHandler) UpdatePlanet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "update_planet")

	if r.Method != http.MethodPut {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("planet ID is required"))
		return
	}

	var p dataset.Planet
	if !decodeBody(w, r, logger, &p) {
		return
	}

	if _, err := h.service.PutPlanet(ctx, id, p); err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	response.Success(w, http.StatusOK, createdResponse{ID: id})
}

// Links serves POST (connect) and DELETE (disconnect)
func (h *DatasetHandler) Links(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "links")

	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req linkRequest
	if !decodeBody(w, r, logger, &req) {
		return
	}

	if r.Method == http.MethodDelete {
		if err := h.service.RemoveLink(ctx, req.From, req.To); err != nil {
			response.Error(w, r, logger, editError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	added, err := h.service.AddLink(ctx, req.From, req.To)
	if err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	response.Success(w, status, linkResponse{From: req.From, To: req.To, Added: added})
}

func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_record")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	kind, ok := dataset.ParseKind(r.PathValue("kind"))
	if !ok {
		response.Error(w, r, logger, errors.Validationf("unknown record kind %q", r.PathValue("kind")))
		return
	}

	if err := h.service.Delete(ctx, kind, r.PathValue("id")); err != nil {
		response.Error(w, r, logger, editError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, logger *slog.Logger, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRecordBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return false
	}
	return true
}

// editError maps dataset sentinels onto the application error taxonomy
func editError(err error) error {
	switch {
	case stderrors.Is(err, dataset.ErrNotFound):
		return errors.NotFoundf("%v", err)
	case stderrors.Is(err, dataset.ErrInvalid), stderrors.Is(err, dataset.ErrMalformed):
		return errors.Validation(err.Error())
	default:
		return errors.WrapInternal("failed to update dataset", err)
	}
}
