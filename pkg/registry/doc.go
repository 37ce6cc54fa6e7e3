// Package registry is the coordinator daemon's in-memory worker directory:
// a mutex-guarded map from packed IPv4 address to availability state, with
// insertion-ordered listing (SPEC_FULL.md §4.7). It deliberately carries no
// persistence or consensus layer — the coordinator is a single process, and
// durability across restarts is out of scope (spec.md Non-goals).
package registry
