package brokerage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cuemby/brokerage/pkg/config"
	"github.com/cuemby/brokerage/pkg/coordinator"
	"github.com/cuemby/brokerage/pkg/fsbackend"
	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/metrics"
	"github.com/cuemby/brokerage/pkg/types"
	"github.com/cuemby/brokerage/pkg/wire"
)

// WorkerLister is the interface the build scheduler (out of scope here,
// spec.md §1) would consume to learn which workers are currently available.
// Facade satisfies it.
type WorkerLister interface {
	FindWorkers(ctx context.Context) (types.WorkerList, error)
}

// Facade is the brokerage's public entry point: FindWorkers,
// SetAvailability, and the bookkeeping (throttle, availability state) that
// spans calls. The zero value is not usable; use New.
type Facade struct {
	cfg      config.BackendConfig
	identity types.HostIdentity

	fsBackend   *fsbackend.Backend
	coordClient *coordinator.Client

	mu        sync.Mutex
	available bool
	throttle  throttle
}

// New constructs a Facade for identity, wiring whichever backend cfg
// selects. protocolVersion is forwarded to the filesystem backend
// (spec.md §6) and is ignored when cfg selects the coordinator or no
// backend.
func New(cfg config.BackendConfig, identity types.HostIdentity, protocolVersion uint32) *Facade {
	f := &Facade{cfg: cfg, identity: identity}

	switch cfg.Backend() {
	case config.BackendFilesystem:
		f.fsBackend = fsbackend.New(cfg.FilesystemRoot(), protocolVersion)
	case config.BackendCoordinator:
		f.coordClient = coordinator.New(cfg.CoordinatorAddr(), cfg.CoordinatorPort())
	}

	return f
}

// Root returns the configured, versioned filesystem rendezvous directory
// (SPEC_FULL.md §6). Empty when the façade is not using the filesystem
// backend.
func (f *Facade) Root() string {
	if f.fsBackend == nil {
		return ""
	}
	return f.fsBackend.Root()
}

// FindWorkers returns the currently available workers, excluding this
// host's own identity and the literal loopback address (spec.md §4.6).
//
// A disabled brokerage, an unreadable rendezvous directory, a coordinator
// that refuses the connection, and a coordinator that never responds all
// resolve to an empty list rather than an error: SPEC_FULL.md §7 absorbs
// every failure at the façade boundary rather than propagating it, so
// callers that need to distinguish these cases should watch the
// brokerage_find_workers_total metric.
func (f *Facade) FindWorkers(ctx context.Context) (types.WorkerList, error) {
	logger := log.WithComponent("brokerage")

	var raw []string

	switch f.cfg.Backend() {
	case config.BackendNone:
		logger.Warn().Msg("brokerage disabled, returning no workers")
		metrics.FindWorkersTotal.WithLabelValues("unconfigured").Inc()
		return nil, nil

	case config.BackendFilesystem:
		workers, err := f.fsBackend.Enumerate()
		if err != nil {
			logger.Warn().Err(err).Msg("filesystem enumerate failed, returning no workers")
			metrics.FindWorkersTotal.WithLabelValues("filesystem_unreachable").Inc()
			return nil, nil
		}
		raw = workers

	case config.BackendCoordinator:
		addrs, err := f.coordClient.RequestWorkerList(ctx)
		if err != nil {
			if errors.Is(err, coordinator.ErrResponseTimeout) {
				metrics.FindWorkersTotal.WithLabelValues("timeout").Inc()
			} else {
				metrics.FindWorkersTotal.WithLabelValues("coordinator_unreachable").Inc()
			}
			logger.Warn().Err(err).Msg("coordinator request_worker_list failed, returning no workers")
			return nil, nil
		}
		raw = make([]string, len(addrs))
		for i, addr := range addrs {
			raw[i] = wire.Uint32ToIP(addr)
		}
	}

	filtered := filterSelfAndLoopback(f.identity, raw)
	if len(filtered) == 0 {
		metrics.FindWorkersTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.FindWorkersTotal.WithLabelValues("ok").Inc()
	}
	return filtered, nil
}

// SetAvailability implements the throttle and transition logic of spec.md
// §4.5. AvailabilityState is updated to available at the end of every call,
// regardless of whether any announcement actually occurred or failed: a
// filesystem write failure still leaves the intent recorded so the next
// throttle tick retries it (SPEC_FULL.md §7).
func (f *Facade) SetAvailability(ctx context.Context, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	var err error

	if available {
		if f.available {
			if !f.throttle.due(now) {
				metrics.ThrottleSkippedTotal.Inc()
			} else {
				err = f.reannounce(ctx, now)
			}
		} else {
			err = f.doAnnounce(ctx)
			f.throttle.restart(now)
		}
	} else if f.available {
		err = f.revoke(ctx)
		f.throttle.restart(now)
	} else {
		f.throttle.restart(now)
	}

	f.available = available
	return err
}

// doAnnounce performs the unconditional announcement used when
// transitioning from unavailable to available.
func (f *Facade) doAnnounce(ctx context.Context) error {
	logger := log.WithHostIdentity(f.identity.String())

	switch f.cfg.Backend() {
	case config.BackendCoordinator:
		err := f.coordClient.SetWorkerStatus(ctx, true)
		recordAnnounce(types.AnnounceResult{Backend: "coordinator", Succeeded: err == nil, At: time.Now()}, "announce")
		return err
	case config.BackendFilesystem:
		err := f.fsBackend.Announce(f.identity)
		recordAnnounce(types.AnnounceResult{Backend: "filesystem", Succeeded: err == nil, At: time.Now()}, "announce")
		return err
	default:
		logger.Warn().Msg("brokerage disabled, availability announcement dropped")
		return nil
	}
}

// reannounce implements the "already available" branch of spec.md §4.5:
// the coordinator backend always re-sends; the filesystem backend only
// recreates the sentinel if it was removed externally, and only restarts
// the throttle timer when it actually acted.
func (f *Facade) reannounce(ctx context.Context, now time.Time) error {
	logger := log.WithHostIdentity(f.identity.String())

	switch f.cfg.Backend() {
	case config.BackendCoordinator:
		err := f.coordClient.SetWorkerStatus(ctx, true)
		recordAnnounce(types.AnnounceResult{Backend: "coordinator", Succeeded: err == nil, At: now}, "reannounce")
		if err != nil {
			return err
		}
		f.throttle.restart(now)
		return nil

	case config.BackendFilesystem:
		if f.fsBackend.Exists(f.identity) {
			// Sentinel still present: leave it and the timer alone so a
			// genuine external removal can trigger a rebuild on the next
			// tick (spec.md §4.5).
			return nil
		}
		err := f.fsBackend.Announce(f.identity)
		recordAnnounce(types.AnnounceResult{Backend: "filesystem", Succeeded: err == nil, At: now}, "reannounce")
		if err != nil {
			return err
		}
		f.throttle.restart(now)
		return nil

	default:
		logger.Warn().Msg("brokerage disabled, availability re-announcement dropped")
		return nil
	}
}

// revoke implements the "available -> unavailable" transition.
func (f *Facade) revoke(ctx context.Context) error {
	logger := log.WithHostIdentity(f.identity.String())

	switch f.cfg.Backend() {
	case config.BackendCoordinator:
		err := f.coordClient.SetWorkerStatus(ctx, false)
		recordAnnounce(types.AnnounceResult{Backend: "coordinator", Succeeded: err == nil, At: time.Now()}, "revoke")
		return err
	case config.BackendFilesystem:
		err := f.fsBackend.Revoke(f.identity)
		recordAnnounce(types.AnnounceResult{Backend: "filesystem", Succeeded: err == nil, At: time.Now()}, "revoke")
		return err
	default:
		logger.Warn().Msg("brokerage disabled, revoke dropped")
		return nil
	}
}

// recordAnnounce updates the brokerage_announce_total counter from result
// and logs the outcome against a backend-scoped logger.
func recordAnnounce(result types.AnnounceResult, operation string) {
	outcome := "ok"
	if !result.Succeeded {
		outcome = "error"
	}
	metrics.AnnounceTotal.WithLabelValues(result.Backend, operation, outcome).Inc()
	log.WithBackend(result.Backend).Debug().
		Str("operation", operation).
		Bool("succeeded", result.Succeeded).
		Time("at", result.At).
		Msg("recorded announce outcome")
}
