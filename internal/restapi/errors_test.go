package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapdash.dashboardpro.org/internal/app"
	"gapdash.dashboardpro.org/internal/dataset"
	"gapdash.dashboardpro.org/internal/models"
)

func TestServerErrorResponse(t *testing.T) {
	api := &RestAPI{Application: &app.Application{}}

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	api.serverErrorResponse(rr, r, errors.New("test server error"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Equal(t, "internal server error", response.Text, "the cause is logged, never returned")
	assert.Equal(t, models.ResponseVersion, response.Version)
	assert.InDelta(t, time.Now().UnixMilli(), response.CurrentTime, float64(time.Minute.Milliseconds()))
	assert.Nil(t, response.Data)
}

func TestErrorResponseMapsSentinels(t *testing.T) {
	api := &RestAPI{Application: &app.Application{}}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "missing country", err: fmt.Errorf("%w: %q", dataset.ErrCountryNotFound, "Atlantis"), status: http.StatusNotFound},
		{name: "unknown measure", err: fmt.Errorf("%w: %q", dataset.ErrUnknownMeasure, "year"), status: http.StatusBadRequest},
		{name: "unknown continent", err: dataset.ErrUnknownContinent, status: http.StatusBadRequest},
		{name: "anything else", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			api.errorResponse(rr, httptest.NewRequest(http.MethodGet, "/test", nil), "field", tt.err)

			assert.Equal(t, tt.status, rr.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, float64(tt.status), body["code"])
			if tt.status == http.StatusBadRequest {
				fieldErrors := body["fieldErrors"].(map[string]interface{})
				assert.Contains(t, fieldErrors, "field")
			}
		})
	}
}
