// Package fsbackend implements the shared-filesystem rendezvous backend
// (spec.md §4.4): a versioned directory under which each available worker
// touches a zero-byte sentinel file named after its host identity, and
// under which clients enumerate to discover the current worker set.
package fsbackend
