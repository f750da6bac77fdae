// shutdown.go - Remote stop endpoint.
package server

import (
	"fmt"
	"net/http"
	"time"
)

// shutdownDelay gives the acknowledgement time to reach the client
// before the listener stops accepting connections.
const shutdownDelay = 100 * time.Millisecond

// shutdownHandler handles POST /shutdown. It acknowledges
// immediately, then signals the lifecycle owner to stop the server.
// The stop is graceful: in-flight requests get to finish (bounded by
// the owner's shutdown timeout), but once signalled it is
// irreversible. Confirmation is the client's job.
func (s *Server) shutdownHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Shutting down...")

		time.AfterFunc(shutdownDelay, s.requestShutdown)
	})
}
