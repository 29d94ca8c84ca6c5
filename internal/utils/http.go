package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// pathExtensions are stripped from the end of path parameters.
var pathExtensions = []string{".json", ".svg"}

// ExtractIDFromParams retrieves a path parameter and removes file extensions like ".json" or ".svg".
// Parameters set by an httprouter.Router take precedence over ServeMux wildcards.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	rawID := httprouter.ParamsFromContext(r.Context()).ByName(paramName)
	if rawID == "" {
		rawID = r.PathValue(paramName)
	}
	for _, ext := range pathExtensions {
		if strings.HasSuffix(rawID, ext) {
			return strings.TrimSuffix(rawID, ext)
		}
	}
	return rawID
}
