// Package adminserver is the optional HTTP surface separate from the RESP
// listener: Prometheus scrape endpoint and, if enabled, net/http/pprof.
package adminserver

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lukluk/rendang/internal/logger"
)

// Config controls whether the admin server runs at all and how it's bound.
type Config struct {
	Enabled bool   `config:"enabled"`
	Address string `config:"address"`
	Pprof   bool   `config:"pprof"`
}

// Server is the admin HTTP server. A disabled Config yields a nil *Server;
// callers must check before calling Start.
type Server struct {
	config Config
	router *mux.Router
	server *http.Server
}

// New builds a Server from conf, or returns nil when disabled.
func New(conf Config) *Server {
	if !conf.Enabled {
		return nil
	}
	router := mux.NewRouter()
	s := &Server{
		config: conf,
		router: router,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
	s.router.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	if conf.Pprof {
		s.registerPprofRoutes()
	}
	return s
}

// Start binds the listener and serves in the background. It returns once
// binding succeeds or fails; Serve errors are reported on errc.
func (s *Server) Start(errc chan<- error) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	logger.Infof("admin server listening on %s", s.config.Address)
	go func() {
		if err := s.server.Serve(l); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()
	return nil
}

// Shutdown gracefully stops the admin server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) registerPprofRoutes() {
	s.router.Methods(http.MethodGet).Path("/debug/pprof/cmdline").HandlerFunc(pprof.Cmdline)
	s.router.Methods(http.MethodGet).Path("/debug/pprof/profile").HandlerFunc(pprof.Profile)
	s.router.Methods(http.MethodGet).Path("/debug/pprof/symbol").HandlerFunc(pprof.Symbol)
	s.router.Methods(http.MethodGet).Path("/debug/pprof/trace").HandlerFunc(pprof.Trace)
	s.router.Methods(http.MethodGet).Path("/debug/pprof/{other}").HandlerFunc(pprof.Index)
}
