// Package httpapi exposes the file-service over HTTP: health, tree listing,
// document read and document write.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finite-collective/docdesk/pkg/store"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the gin engine serving the file-service API.
type Server struct {
	engine *gin.Engine
	api    *API
	addr   string
}

// NewServer wires the API over the given store.
func NewServer(addr string, st *store.Store, maxBodyBytes int64, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(MaxBodySize(maxBodyBytes))
	engine.Use(CORS())

	api := NewAPI(st, logger)
	registerRoutes(engine, api)

	return &Server{engine: engine, api: api, addr: addr}
}

// Run serves the API until the context is canceled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{Addr: s.addr, Handler: s.engine}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// WatchInvalidate runs the tree cache invalidation loop against the store's
// filesystem watcher until the context is canceled.
func (s *Server) WatchInvalidate(ctx context.Context) error {
	return s.api.WatchInvalidate(ctx)
}

// Handler exposes the engine for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}
