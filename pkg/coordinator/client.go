package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/metrics"
	"github.com/cuemby/brokerage/pkg/types"
	"github.com/cuemby/brokerage/pkg/wire"
	"github.com/google/uuid"
)

// DefaultPort is the fixed compile-time coordinator port (spec.md §6).
// pkg/config.DefaultCoordinatorPort is the canonical source; this alias
// exists so callers that only depend on pkg/coordinator don't need to
// import pkg/config for a constant.
const DefaultPort = 19086

const (
	// ConnectTimeout bounds dialing the coordinator (spec.md §4.3 step 1).
	ConnectTimeout = 2000 * time.Millisecond

	// ResponseTimeout bounds waiting for a RequestWorkerList response: 5x
	// ConnectTimeout (SPEC_FULL.md §4.3, resolved open question).
	ResponseTimeout = 5 * ConnectTimeout
)

// ErrResponseTimeout is returned by RequestWorkerList when the coordinator
// accepts the connection but never answers within ResponseTimeout.
var ErrResponseTimeout = errors.New("coordinator: response timeout")

// Client is a short-lived coordinator RPC client. Exactly one exchange is
// outstanding at a time per Client (spec.md §4.3); callers must not invoke
// RequestWorkerList or SetWorkerStatus concurrently on the same Client.
type Client struct {
	pool *connPool
}

// New returns a Client targeting addr:port.
func New(addr string, port int) *Client {
	return &Client{
		pool: newConnPool(fmt.Sprintf("%s:%d", addr, port), ConnectTimeout),
	}
}

// listResult is the one-shot hand-off between the response-reading
// goroutine and RequestWorkerList, collapsing types.PendingListUpdate and
// its ready flag into a single buffered channel send (SPEC_FULL.md §5).
type listResult struct {
	update types.PendingListUpdate
	err    error
}

// RequestWorkerList performs one RequestWorkerList/WorkerList exchange and
// returns the coordinator's unfiltered, packed address list.
//
// The connection is acquired, used for exactly this exchange, and released
// before returning on every path, including timeout: a timed-out response
// goroutine finishes writing to resultCh (which is buffered, so it never
// blocks) and then exits on its own once the frame read unblocks or errors.
func (c *Client) RequestWorkerList(ctx context.Context) ([]uint32, error) {
	exchangeID := uuid.NewString()
	logger := log.WithExchangeID(exchangeID)
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.CoordinatorExchangeDuration, "request_worker_list")

	conn, err := c.pool.acquire()
	if err != nil {
		logger.Warn().Err(err).Msg("coordinator connect failed")
		return nil, err
	}
	defer c.pool.release(conn)

	if err := wire.WriteFrame(conn, wire.MsgRequestWorkerList, nil); err != nil {
		logger.Warn().Err(err).Msg("coordinator write failed")
		return nil, err
	}

	resultCh := make(chan listResult, 1)
	go func() {
		msgType, payload, err := wire.ReadFrame(conn)
		if err != nil {
			resultCh <- listResult{err: err}
			return
		}
		if msgType != wire.MsgWorkerList {
			resultCh <- listResult{err: fmt.Errorf("coordinator: unexpected response message type %d", msgType)}
			return
		}
		addrs, err := wire.DecodeWorkerList(payload)
		if err != nil {
			resultCh <- listResult{err: err}
			return
		}
		resultCh <- listResult{update: types.PendingListUpdate{Addresses: addrs, Ready: true}}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			logger.Warn().Err(res.err).Msg("coordinator response failed")
			return nil, res.err
		}
		logger.Debug().Int("worker_count", len(res.update.Addresses)).Msg("received worker list")
		return res.update.Addresses, nil

	case <-time.After(ResponseTimeout):
		logger.Warn().Dur("timeout", ResponseTimeout).Msg("coordinator response timeout")
		return nil, ErrResponseTimeout

	case <-ctx.Done():
		logger.Warn().Err(ctx.Err()).Msg("coordinator exchange cancelled")
		return nil, ctx.Err()
	}
}

// SetWorkerStatus sends a SetWorkerStatus(available) message and tears down
// the connection without awaiting a response (spec.md §4.3 step 5).
func (c *Client) SetWorkerStatus(ctx context.Context, available bool) error {
	logger := log.WithExchangeID(uuid.NewString())
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.CoordinatorExchangeDuration, "set_worker_status")

	conn, err := c.pool.acquire()
	if err != nil {
		logger.Warn().Err(err).Msg("coordinator connect failed")
		return err
	}
	defer c.pool.release(conn)

	if err := wire.WriteFrame(conn, wire.MsgSetWorkerStatus, wire.EncodeBool(available)); err != nil {
		logger.Warn().Err(err).Msg("coordinator write failed")
		return err
	}

	logger.Debug().Bool("available", available).Msg("sent worker status")
	return nil
}
