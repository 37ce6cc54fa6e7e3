// Package coordsrv is the reference coordinator daemon consumed by
// pkg/coordinator (SPEC_FULL.md §4.7): a TCP listener that accepts one
// connection per exchange, reads exactly one framed request, and answers
// RequestWorkerList from a pkg/registry or applies SetWorkerStatus using
// the peer's source address. Authentication, encryption, load balancing
// beyond a flat list, and health checks beyond TCP reachability are out of
// scope (spec.md Non-goals).
package coordsrv
