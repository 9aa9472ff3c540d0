package di

import (
	"net/http"

	"coating/transport/http/middleware"
)

// rateLimit hands the public form endpoints the shared limiter.
func rateLimit(app middleware.AppMiddleware) func(http.Handler) http.Handler {
	return app.RateLimit()
}
