package coordsrv

import (
	"fmt"
	"net"

	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/metrics"
	"github.com/cuemby/brokerage/pkg/registry"
	"github.com/cuemby/brokerage/pkg/wire"
	"github.com/rs/zerolog"
)

// Server is the reference coordinator daemon: a TCP listener backed by a
// registry.Registry.
type Server struct {
	registry *registry.Registry
	listener net.Listener
}

// New binds a Server to addr. The caller must call Serve to start accepting
// connections.
func New(addr string, reg *registry.Registry) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("coordsrv: listen on %s: %w", addr, err)
	}
	return &Server{registry: reg, listener: listener}, nil
}

// Addr returns the listener's bound address, useful when addr was passed as
// "host:0" to pick an ephemeral port.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting new connections. In-flight exchanges are not
// interrupted.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Serve accepts connections until the listener is closed. Each connection
// is handled in its own goroutine and carries exactly one request, matching
// the client's one-exchange-per-connection contract (SPEC_FULL.md §4.7).
func (s *Server) Serve() error {
	logger := log.WithComponent("coordsrv")
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn, logger)
	}
}

func (s *Server) handle(conn net.Conn, logger zerolog.Logger) {
	defer conn.Close()

	peerLogger := logger.With().Str("peer", conn.RemoteAddr().String()).Logger()

	msgType, payload, err := wire.ReadFrame(conn)
	if err != nil {
		peerLogger.Debug().Err(err).Msg("failed to read request frame")
		return
	}

	switch msgType {
	case wire.MsgRequestWorkerList:
		addrs := s.registry.List()
		if err := wire.WriteFrame(conn, wire.MsgWorkerList, wire.EncodeWorkerList(addrs)); err != nil {
			peerLogger.Warn().Err(err).Msg("failed to write worker list response")
			return
		}
		peerLogger.Debug().Int("worker_count", len(addrs)).Msg("served worker list")

	case wire.MsgSetWorkerStatus:
		available, err := wire.DecodeBool(payload)
		if err != nil {
			peerLogger.Debug().Err(err).Msg("malformed SetWorkerStatus payload")
			return
		}
		addr, err := peerAddr(conn)
		if err != nil {
			peerLogger.Warn().Err(err).Msg("could not derive peer address for SetWorkerStatus")
			return
		}
		s.registry.SetStatus(addr, available)
		metrics.RegistrySize.Set(float64(s.registry.Len()))
		peerLogger.Debug().Bool("available", available).Msg("updated worker status")

	default:
		peerLogger.Debug().Uint8("msg_type", uint8(msgType)).Msg("unknown request message type")
	}
}

// peerAddr derives the packed IPv4 address of conn's remote endpoint, used
// to key SetWorkerStatus updates without any address in the wire payload
// itself (SPEC_FULL.md §4.7).
func peerAddr(conn net.Conn) (uint32, error) {
	tcpAddr, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("coordsrv: remote address is not a TCP address: %v", conn.RemoteAddr())
	}
	return wire.IPToUint32(tcpAddr.IP.String())
}
