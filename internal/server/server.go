// Package server wraps http.Server with the timeouts and optional TLS the
// service uses.
package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Server represents the HTTP server
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
}

// New creates a server. writeTimeout must cover the slowest route, which
// is an AI proxy call waiting on the upstream model.
func New(handler http.Handler, port, tlsCert, tlsKey string, writeTimeout time.Duration) *Server {
	if writeTimeout < 30*time.Second {
		writeTimeout = 30 * time.Second
	}
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  120 * time.Second,
		},
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
	}
}

// Start starts serving in a background goroutine. Listen errors other than
// a clean shutdown are sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	serve := func() error {
		if s.tlsCert != "" && s.tlsKey != "" {
			s.srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
			return s.srv.ListenAndServeTLS(s.tlsCert, s.tlsKey)
		}
		return s.srv.ListenAndServe()
	}

	go func() {
		if err := serve(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
