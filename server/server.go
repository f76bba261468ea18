// Package server serves the live HTML report produced by render.HTMLReport
// over HTTP, for the compare CLI's watch --serve mode. An atomic pointer
// swap lets a re-render replace what's served without ever blocking an
// in-flight request.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

// Server serves a single rendered report via HTTP.
type Server struct {
	http    *http.Server
	handler *handler
	addr    string
	errc    chan error
}

// Run starts listening on addr and serving report, returning immediately;
// serving happens in a background goroutine.
func Run(addr string, report []byte) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{}
	h.report.Store(&report)

	s := &Server{
		http:    &http.Server{Handler: h},
		handler: h,
		addr:    l.Addr().String(),
		errc:    make(chan error),
	}

	go func() {
		if err := s.http.Serve(l); err != nil {
			s.errc <- err
		}
	}()

	return s, nil
}

// Addr returns the address the server is actually listening on.
func (s *Server) Addr() string { return s.addr }

// Replace swaps the report being served for a freshly rendered one.
func (s *Server) Replace(report []byte) {
	s.handler.report.Store(&report)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %v", err)
	}
	close(s.errc)
	return nil
}

// Error returns a channel that receives a fatal serving error, if any.
func (s *Server) Error() <-chan error {
	return s.errc
}
