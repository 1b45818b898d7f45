// Package server exposes the live deck over HTTP for browser previews.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/internal/logger"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/internal/studio"
)

// Config carries the collaborators of the HTTP surface. Feed and Tracer
// are optional.
type Config struct {
	Studio *studio.Studio
	Feed   *scale.Feed
	Log    *logger.Logger
	Tracer trace.TracerProvider
	// ExportFilename names the download of GET /v1/export.
	ExportFilename string
	// Heartbeat is the SSE keep-alive interval.
	Heartbeat time.Duration
}

type Server struct {
	cfg    Config
	engine *gin.Engine
}

func New(cfg Config) *Server {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.ExportFilename == "" {
		cfg.ExportFilename = export.Filename
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = 15 * time.Second
	}
	s := &Server{cfg: cfg}
	s.engine = NewRouter(s)
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve runs the server on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	s.cfg.Log.Info("http listening", "addr", l.Addr().String())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run listens on addr and serves until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
