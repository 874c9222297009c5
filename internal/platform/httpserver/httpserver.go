package httpserver

import (
	"net/http"
	"time"
)

// New builds the gateway's HTTP server. The write timeout leaves headroom
// over the backend call timeout so a slow reservation backend surfaces as a
// transport error, not a dropped connection.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
