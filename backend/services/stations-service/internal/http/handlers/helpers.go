package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/http/middleware"
	"stationhub/backend/services/stations-service/internal/models"
	"stationhub/backend/services/stations-service/internal/service"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

var (
	errMalformedBody = errors.New("invalid JSON body")
	errBodyTooLarge  = errors.New("request body too large")
)

type errorResponse struct {
	Error  string              `json:"error"`
	Errors []models.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON document into dst. Unknown fields and wrongly typed
// values come back as *service.ValidationError, syntax problems as errMalformedBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var (
			typeErr *json.UnmarshalTypeError
			sizeErr *http.MaxBytesError
		)
		switch {
		case errors.As(err, &sizeErr):
			return errBodyTooLarge
		case errors.As(err, &typeErr):
			return &service.ValidationError{Fields: []models.FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be a %s", typeErr.Type.String()),
			}}}
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return &service.ValidationError{Fields: []models.FieldError{{
				Field:   field,
				Message: "field is not accepted",
			}}}
		default:
			return errMalformedBody
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errMalformedBody
	}
	return nil
}

// writeServiceError maps core error kinds onto HTTP statuses in one place.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var (
		validationErr *service.ValidationError
		queryErr      *service.InvalidQueryError
	)
	switch {
	case errors.Is(err, errMalformedBody):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Errors: validationErr.Fields})
	case errors.As(err, &queryErr):
		writeError(w, http.StatusBadRequest, queryErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "not authorized to modify this station")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "charging station not found")
	case errors.Is(err, service.ErrEmailInUse):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrStoreUnavailable):
		logger.Error("store unavailable",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
