package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"
)

type Config struct {
	Addr string
}

// Service runs the local API server the browser UI talks to.
type Service struct {
	cfg     Config
	handler http.Handler
	srv     *http.Server
	ln      net.Listener
	errCh   chan error
}

func NewService(cfg Config, handler http.Handler) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:6137"
	}
	return &Service{cfg: cfg, handler: handler, errCh: make(chan error, 1)}
}

// Start binds the listener synchronously so address errors surface here, then serves in the background.
func (s *Service) Start() error {
	if s.handler == nil {
		return errors.New("ui: handler is nil")
	}
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln

	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			s.errCh <- err
		}
	}()

	log.Info("HTTP server listening", "url", s.URL())
	return nil
}

// Err delivers a serve failure after Start returned.
func (s *Service) Err() <-chan error {
	return s.errCh
}

func (s *Service) URL() string {
	if s.ln == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.ln.Addr().String())
}

func (s *Service) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
