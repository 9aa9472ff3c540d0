package handler

import (
	"net/http"
	"sync"

	"coating/config"
	"coating/di"
	"coating/shared/logger"
	"coating/shared/metrics"
	transport "coating/transport/http"
)

var (
	once   sync.Once
	server *transport.HTTP
)

// Handler serves a single request on a function runtime. The container is built on the first call.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())
		metrics.Register()

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
