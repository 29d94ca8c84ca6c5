package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want string
	}{
		{name: "plain value", path: "Canada", want: "Canada"},
		{name: "json extension", path: "Canada.json", want: "Canada"},
		{name: "svg extension", path: "lifeExp.svg", want: "lifeExp"},
		{name: "escaped space", path: "New%20Zealand", want: "New Zealand"},
		{name: "dots inside the name", path: "Korea,%20Dem.%20Rep..json", want: "Korea, Dem. Rep."},
	}

	for _, tc := range testCases {
		t.Run("servemux "+tc.name, func(t *testing.T) {
			mux := http.NewServeMux()

			var result string
			mux.HandleFunc("GET /api/countries/{country}", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "country")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/countries/"+tc.path, nil)
			mux.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, result)
		})

		t.Run("httprouter "+tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/charts/:country", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "country")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/charts/"+tc.path, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, result)
		})
	}
}
