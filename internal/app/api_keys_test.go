package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gapdash.dashboardpro.org/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{Config: appconf.Config{ApiKeys: []string{"key"}}}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestUnknownKeyIsInvalid(t *testing.T) {
	app := &Application{Config: appconf.Config{ApiKeys: []string{"key"}}}
	assert.True(t, app.IsInvalidAPIKey("other"))
	assert.False(t, app.IsInvalidAPIKey("key"))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	guarded := &Application{Config: appconf.Config{ApiKeys: []string{"ops"}}}

	assert.True(t, guarded.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/debug/", nil)))
	assert.False(t, guarded.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/debug/?key=ops", nil)))

	req := httptest.NewRequest("GET", "/debug/", nil)
	req.Header.Set("X-API-Key", "ops")
	assert.False(t, guarded.RequestHasInvalidAPIKey(req))

	open := &Application{}
	assert.False(t, open.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/debug/", nil)))
}
