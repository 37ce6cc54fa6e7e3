// Package coordinator implements the brokerage's coordinator RPC client:
// the half of spec.md §4.3 that runs inside the brokerage process and talks
// to a pkg/coordsrv (or any wire-compatible coordinator) over a framed TCP
// protocol (pkg/wire).
//
// Each exchange owns exactly one connection, acquired from a small scoped
// pool and released on every exit path (SPEC_FULL.md §5, "Resource
// discipline"). RequestWorkerList replaces the original design's unbounded
// spin-wait with a one-shot channel rendezvous bounded by ResponseTimeout
// (SPEC_FULL.md §4.3).
package coordinator
