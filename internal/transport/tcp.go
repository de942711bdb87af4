// Package transport wires the generator surface onto the sidecar's TCP
// listener, grounded on the teacher's core/tcp.Server.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"

	"github.com/dilipkumar2k6/uuid-generation/internal/core/tcp"
	"github.com/dilipkumar2k6/uuid-generation/internal/idgen"
	"github.com/dilipkumar2k6/uuid-generation/internal/logging"
)

// IDServer accepts one identifier request per line and writes back
// NextIDString() plus a newline, matching the original sidecar's simple
// line-delimited protocol.
type IDServer struct {
	server *tcp.Server
	gen    idgen.Generator
}

// NewIDServer builds a tcp.Server bound to addr that dispatches every
// accepted connection to gen.
func NewIDServer(addr string, gen idgen.Generator, opts ...tcp.ServerOption) (*IDServer, error) {
	s := &IDServer{gen: gen}

	server, err := tcp.NewServer(addr, s.handle, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("transport: build tcp server: %w", err)
	}
	s.server = server
	return s, nil
}

// Run starts accepting connections. It is non-blocking; Close stops it.
func (s *IDServer) Run(_ context.Context) error {
	return s.server.Start()
}

// Close stops accepting connections and waits for in-flight handlers.
func (s *IDServer) Close() error {
	return s.server.Stop()
}

func (s *IDServer) handle(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		id := s.gen.NextIDString()
		if _, err := fmt.Fprintf(conn, "%s\n", id); err != nil {
			logging.Default().Error("transport: write failed", logging.ErrAttr(err))
			return
		}
	}
}
