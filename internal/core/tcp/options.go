package tcp

import (
	"crypto/tls"
	"log"
	"time"
)

type ServerOption func(*Server)

func WithServerTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

func WithServerLogger(logger *log.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithServerTLS(config *tls.Config) ServerOption {
	return func(s *Server) {
		s.tlsConfig = config
	}
}

func WithMaxConnections(max int64) ServerOption {
	return func(s *Server) {
		s.maxConns = max
	}
}
