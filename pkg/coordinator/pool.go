package coordinator

import (
	"fmt"
	"net"
	"time"
)

// connPool hands out a single scoped connection per exchange. It is not a
// pool in the sense of reusing connections across exchanges — spec.md §4.3
// describes a "short-lived connection pool bound to the brokerage" that is
// instantiated and torn down around each exchange, not a long-lived,
// multiplexed one.
type connPool struct {
	addr           string
	connectTimeout time.Duration
}

func newConnPool(addr string, connectTimeout time.Duration) *connPool {
	return &connPool{addr: addr, connectTimeout: connectTimeout}
}

// acquire dials a fresh connection, bounded by the pool's connect timeout.
func (p *connPool) acquire() (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", p.addr, p.connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("coordinator: connect to %s: %w", p.addr, err)
	}
	return conn, nil
}

// release closes the connection. Safe to call with a nil conn or to call
// twice; errors are not actionable from the caller's exchange so they are
// dropped here and left to the connection's own internal logging, if any.
func (p *connPool) release(conn net.Conn) {
	if conn == nil {
		return
	}
	_ = conn.Close()
}
