package httpserver

import (
	"net/http"
	"time"
)

// New builds the portal's HTTP server. Form submissions are small, so the
// body timeouts stay tight; per-request deadlines are enforced by the
// timeout middleware, not here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
