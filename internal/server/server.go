package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/zy/internal/config"
)

// ReadHeaderTimeout bounds how long a client may take to send headers.
const ReadHeaderTimeout = 10 * time.Second

// ErrNotListening is returned by Serve before Listen succeeded.
var ErrNotListening = errors.New("server is not listening")

// Server serves one handler on every configured listen address.
type Server struct {
	cfg  *config.Config
	log  *zap.Logger
	http *http.Server

	mu        sync.Mutex
	listeners []net.Listener
}

// New creates a Server for cfg. Nothing is bound until Listen.
func New(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Handler:           NewHandler(cfg, log),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ErrorLog:          zap.NewStdLog(log.Named("http")),
		},
	}
}

// Listen binds every listen address. Either all addresses are bound or
// none are, and the error names the one that failed.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listeners := make([]net.Listener, 0, len(s.cfg.Listen))
	for _, addr := range s.cfg.Listen {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		listeners = append(listeners, ln)
		s.log.Info(fmt.Sprintf("Listening on http://%s", ln.Addr()))
	}
	s.listeners = listeners
	return nil
}

// Addrs returns the bound addresses, in listen order.
func (s *Server) Addrs() []net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := make([]net.Addr, 0, len(s.listeners))
	for _, ln := range s.listeners {
		addrs = append(addrs, ln.Addr())
	}
	return addrs
}

// Serve accepts connections on every listener and blocks until they are all
// closed. It returns nil after Stop.
func (s *Server) Serve() error {
	s.mu.Lock()
	listeners := s.listeners
	s.mu.Unlock()

	if len(listeners) == 0 {
		return ErrNotListening
	}

	var g errgroup.Group
	for _, ln := range listeners {
		ln := ln
		g.Go(func() error {
			err := s.http.Serve(ln)
			if err == nil || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			// take the other listeners down with this one
			_ = s.http.Close()
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		})
	}
	return g.Wait()
}

// Stop shuts the server down. Graceful stops accepting and waits for
// in-flight requests until ctx is done; otherwise connections are closed at
// once.
func (s *Server) Stop(ctx context.Context, graceful bool) error {
	if !graceful {
		s.log.Info("Shutting down immediately")
		return s.http.Close()
	}

	s.log.Info("Starting graceful shutdown")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
