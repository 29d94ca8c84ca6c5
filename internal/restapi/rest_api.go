package restapi

import (
	"net/http"
	"time"

	"gapdash.dashboardpro.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Middleware wraps the whole router: request logging outermost, then security
// headers, compression and the per-client rate limit.
func (api *RestAPI) Middleware(next http.Handler) http.Handler {
	handler := next
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}
