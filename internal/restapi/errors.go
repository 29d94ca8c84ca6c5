package restapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/logging"
	"gapdash.dashboardpro.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.requestLogger(r), "failed to encode response", err)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusUnauthorized, "permission denied"))
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.requestLogger(r), "internal server error", err,
		slog.String("path", r.URL.Path))
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusInternalServerError, "internal server error"))
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.sendResponse(w, r, models.NewErrorResponse(http.StatusNotFound, text))
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		models.ResponseModel
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		ResponseModel: models.NewErrorResponse(http.StatusBadRequest, "invalid request"),
		FieldErrors:   fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.requestLogger(r), "failed to encode validation error response", err)
	}
}

// errorResponse maps dataset sentinel errors onto 400 and 404. Everything else is a 500.
func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, field string, err error) {
	switch {
	case errors.Is(err, dataset.ErrCountryNotFound):
		api.notFoundResponse(w, r, err.Error())
	case errors.Is(err, dataset.ErrUnknownMeasure), errors.Is(err, dataset.ErrUnknownContinent):
		api.validationErrorResponse(w, r, map[string][]string{field: {err.Error()}})
	default:
		api.serverErrorResponse(w, r, err)
	}
}

// requestLogger returns the request-scoped logger installed by the logging middleware.
func (api *RestAPI) requestLogger(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}
