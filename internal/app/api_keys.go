package app

import "net/http"

// RequestHasInvalidAPIKey guards the operator endpoints. With no keys
// configured every request is allowed.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	if len(app.Config.ApiKeys) == 0 {
		return false
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		key = r.Header.Get("X-API-Key")
	}
	return app.IsInvalidAPIKey(key)
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
