// Package handler is the serverless entrypoint. The container is built on the first request
// and reused by later invocations of the same instance.
package handler

import (
	"bistro/config"
	"bistro/di"
	"bistro/shared/logger"
	"net/http"
	"sync"
)

var (
	boot   sync.Once
	server http.Handler
)

func Handler(w http.ResponseWriter, r *http.Request) {
	boot.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	server.ServeHTTP(w, r)
}
