package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/http/middleware"
	"stationhub/backend/services/stations-service/internal/models"
)

// StationService is the credential-taking station API the handlers drive.
type StationService interface {
	Authenticator
	ListStations(ctx context.Context, credential string, params url.Values) (*models.StationPage, error)
	GetStation(ctx context.Context, credential, id string) (*models.Station, error)
	CreateStation(ctx context.Context, credential string, input models.StationInput) (*models.Station, error)
	UpdateStation(ctx context.Context, credential, id string, patch models.StationPatch) (*models.Station, error)
	DeleteStation(ctx context.Context, credential, id string) error
}

// StationsHandlers serves /api/charging-stations.
type StationsHandlers struct {
	stations StationService
	logger   *zap.Logger
}

// NewStationsHandlers returns handler.
func NewStationsHandlers(stations StationService, logger *zap.Logger) *StationsHandlers {
	return &StationsHandlers{stations: stations, logger: logger}
}

type pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
	Limit   int `json:"limit"`
}

type listResponse struct {
	Stations   []models.Station `json:"stations"`
	Pagination pagination       `json:"pagination"`
}

type mutationResponse struct {
	Message string          `json:"message"`
	Station *models.Station `json:"station,omitempty"`
}

// List handles GET /api/charging-stations.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.stations.ListStations(r.Context(), middleware.BearerToken(r), r.URL.Query())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	items := page.Items
	if items == nil {
		items = []models.Station{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Stations: items,
		Pagination: pagination{
			Current: page.Page,
			Pages:   page.Pages,
			Total:   page.Total,
			Limit:   page.Limit,
		},
	})
}

// Get handles GET /api/charging-stations/{id}.
func (h *StationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	station, err := h.stations.GetStation(r.Context(), middleware.BearerToken(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// Create handles POST /api/charging-stations.
func (h *StationsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	credential := middleware.BearerToken(r)
	var input models.StationInput
	if err := h.authenticatedBody(w, r, credential, &input); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	station, err := h.stations.CreateStation(r.Context(), credential, input)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, mutationResponse{Message: "Charging station created successfully", Station: station})
}

// Update handles PUT /api/charging-stations/{id}.
func (h *StationsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	credential := middleware.BearerToken(r)
	var patch models.StationPatch
	if err := h.authenticatedBody(w, r, credential, &patch); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	station, err := h.stations.UpdateStation(r.Context(), credential, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Message: "Charging station updated successfully", Station: station})
}

// Delete handles DELETE /api/charging-stations/{id}.
func (h *StationsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.stations.DeleteStation(r.Context(), middleware.BearerToken(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Message: "Charging station deleted successfully"})
}

// authenticatedBody rejects the caller before the body is looked at, so anonymous
// requests never see payload validation errors.
func (h *StationsHandlers) authenticatedBody(w http.ResponseWriter, r *http.Request, credential string, dst interface{}) error {
	if _, err := h.stations.Authenticate(r.Context(), credential); err != nil {
		return err
	}
	return decodeJSON(w, r, dst)
}
