// Package metrics exposes Prometheus collectors for the brokerage and
// coordinator daemon, registered against the default registry at package
// init (SPEC_FULL.md §10.3):
//
//   - brokerage_find_workers_total{result} — FindWorkers outcomes: ok,
//     empty, unconfigured, filesystem_unreachable, coordinator_unreachable,
//     timeout.
//   - brokerage_announce_total{backend,operation,outcome} — announce/revoke
//     results.
//   - brokerage_throttle_skipped_total — re-announcements suppressed by the
//     10s availability throttle.
//   - brokerage_coordinator_exchange_duration_seconds{message_type} —
//     coordinator round-trip latency.
//   - brokerage_coordinator_registry_size — distinct workers known to the
//     coordinator daemon.
//
// It also carries the teacher's generic component-health tracker
// (RegisterComponent/GetHealth/GetReadiness) and its HTTP handlers, used by
// cmd/brokercoordinatord to serve /health, /ready, and /live.
package metrics
