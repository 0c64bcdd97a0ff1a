package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/marcellhenrique/LibrarySystem/internal/config"
)

// Server owns the http.Server lifecycle of the library API
type Server struct {
	cfg      *config.Config
	server   *http.Server
	listener net.Listener
}

func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.App.Port),
			Handler:        handler,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
	}
}

// Listen binds the configured port. APP_PORT=0 picks a free one; see Addr.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr is the bound address, empty before Listen
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start serves until Shutdown; it returns http.ErrServerClosed after a clean stop
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	slog.Info("library api listening",
		"app", s.cfg.App.Name,
		"addr", s.Addr(),
		"env", s.cfg.App.Env,
		"read_timeout", s.cfg.Server.ReadTimeout,
		"write_timeout", s.cfg.Server.WriteTimeout,
	)

	return s.server.Serve(s.listener)
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("library api draining connections", "addr", s.Addr())
	return s.server.Shutdown(ctx)
}
