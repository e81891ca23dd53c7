// Package server runs the TCP accept loop: one goroutine per connection,
// tracked so shutdown can wait for in-flight connections to drain.
package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/lukluk/rendang/internal/logger"
	"github.com/lukluk/rendang/internal/pipeline"
	"github.com/lukluk/rendang/internal/store"
)

// Server owns the listener and the set of in-flight connection goroutines.
type Server struct {
	addr     string
	store    *store.Store
	listener net.Listener
	wg       sync.WaitGroup
}

// New builds a Server bound to addr; no socket is opened until Start.
func New(addr string, s *store.Store) *Server {
	return &Server{addr: addr, store: s}
}

// Start opens the listener and begins accepting connections in the
// background. It returns once the listener is bound; an accept error after
// that point ends the accept loop and is neither returned nor logged.
func (srv *Server) Start() error {
	l, err := net.Listen("tcp", srv.addr)
	if err != nil {
		return err
	}
	srv.listener = l
	logger.Infof("server listening on %s", srv.addr)

	go srv.acceptLoop()
	return nil
}

func (srv *Server) acceptLoop() {
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			// Shutdown closes the listener to unblock Accept; that's the
			// expected way out of this loop.
			return
		}
		srv.wg.Add(1)
		go func() {
			defer srv.wg.Done()
			pipeline.Handle(conn, srv.store)
		}()
	}
}

// Addr returns the bound listener address. Valid only after Start succeeds.
func (srv *Server) Addr() string {
	return srv.listener.Addr().String()
}

// Shutdown stops accepting new connections and waits up to grace for
// in-flight connections to finish on their own. It does not forcibly close
// connections still running when grace elapses; it simply stops waiting.
func (srv *Server) Shutdown(ctx context.Context, grace time.Duration) error {
	if srv.listener != nil {
		srv.listener.Close()
	}

	done := make(chan struct{})
	go func() {
		srv.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-done:
		logger.Infof("server: all connections drained")
	case <-timer.C:
		logger.Warnf("server: grace period elapsed with connections still open")
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
