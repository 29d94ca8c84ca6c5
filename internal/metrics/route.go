package metrics

import "context"

type routeKey struct{}

// WithRoute returns a context carrying a slot for the matched route label.
func WithRoute(ctx context.Context) (context.Context, *string) {
	route := new(string)
	return context.WithValue(ctx, routeKey{}, route), route
}

// SetRoute records the route label for the current request. Handlers behind a
// router that does not set http.Request.Pattern call this so request metrics
// stay bounded to registered routes.
func SetRoute(ctx context.Context, route string) {
	if slot, ok := ctx.Value(routeKey{}).(*string); ok {
		*slot = route
	}
}
