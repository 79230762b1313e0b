package rtspserver

import (
	"net"

	"github.com/rs/zerolog/log"

	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
)

// Server accepts TCP connections and serves each one as a Connection.
// Grounded on gortsplib's server.go Start/Wait/accept-loop shape.
type Server struct {
	ctx *SharedContext
	rt  *runtime.Runtime

	listener net.Listener
}

// NewServer returns a Server bound to addr (e.g. ":8554"). The listener is
// opened immediately so callers can log the resolved address before
// Serve blocks.
func NewServer(addr string, ctx *SharedContext, rt *runtime.Runtime) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{ctx: ctx, rt: rt, listener: ln}, nil
}

// Addr returns the resolved listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs the accept loop until the listener is closed (typically via
// the Runtime stopping and Close being called from the same shutdown
// path). Each accepted connection is served in its own goroutine spawned
// through rt, so the server's Stop barrier also waits for every live
// Connection to finish.
func (s *Server) Serve() error {
	for {
		sock, err := s.listener.Accept()
		if err != nil {
			return err
		}
		log.Info().Str("remote", sock.RemoteAddr().String()).Msg("rtspserver: accepted connection")

		s.rt.Spawn(func(tc *runtime.TaskContext) {
			conn := NewConnection(sock, s.ctx)
			conn.Serve(s.rt)
		})
	}
}

// Close stops the accept loop by closing the listener.
func (s *Server) Close() error {
	return s.listener.Close()
}
