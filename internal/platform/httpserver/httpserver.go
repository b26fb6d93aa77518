package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for this service: small
// JSON bodies and in-memory verification work, so slow requests indicate a
// stuck client rather than a long computation.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
