package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server is one running share instance: an HTTP listener plus the
// store for its storage root. Several instances can coexist in tests,
// each with its own directory and counters.
type Server struct {
	cfg        Config
	store      *Store
	metrics    *Metrics
	httpServer *http.Server

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// New validates cfg, resolves the storage root, and wires the routes
// and middleware. The returned server has not started listening yet.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := NewStore(cfg.Dir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        cfg,
		store:      store,
		metrics:    &Metrics{},
		shutdownCh: make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.Handle("/", s.indexHandler())
	mux.Handle("/files/", s.downloadHandler())
	mux.Handle("/upload", s.uploadHandler())
	mux.Handle("/delete/", s.deleteHandler())
	mux.Handle("/shutdown", s.shutdownHandler())
	mux.Handle("/_files_json", s.listingHandler())
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	// Wrap middleware: requestID -> logging -> limiter -> compression -> headers -> mux
	var handler http.Handler = mux
	handler = securityHeadersMiddleware(handler)
	handler = compressionMiddleware(handler)
	handler = newRateLimiter(300, time.Minute).middleware(handler)
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Store exposes the underlying store, mainly for tests.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the full middleware-wrapped handler, for driving
// the server through httptest without a real listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until Shutdown is called or the listener
// fails. Returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting new connections and waits for in-flight
// requests to finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ShutdownRequested is closed once a /shutdown request has been
// acknowledged. The lifecycle owner selects on it and then calls
// Shutdown.
func (s *Server) ShutdownRequested() <-chan struct{} {
	return s.shutdownCh
}

func (s *Server) requestShutdown() {
	s.shutdownOnce.Do(func() { close(s.shutdownCh) })
}
