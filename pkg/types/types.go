package types

import "time"

// HostIdentity is the stable local identifier resolved once at process
// start. It doubles as the rendezvous sentinel filename and the self-filter
// key applied to every worker list the brokerage returns.
type HostIdentity string

// String satisfies fmt.Stringer so HostIdentity prints naturally in logs.
func (h HostIdentity) String() string {
	return string(h)
}

// WorkerList is the ordered set of addresses returned by FindWorkers, with
// the local identity and loopback already excluded.
type WorkerList []string

// PendingListUpdate is the single-slot hand-off between the coordinator
// client's response-reading goroutine and a blocked FindWorkers call.
// coordinator.Client.RequestWorkerList creates exactly one of these per
// in-flight request.
type PendingListUpdate struct {
	Addresses []uint32
	Ready     bool
}

// ToolIdentity is a marker interface for the compiler/tool manifest and
// dependency graph node described in spec.md §1 ("a sibling node type holds
// executable identity, environment, and toolchain family classification").
// That subsystem is an external collaborator of the brokerage, referenced
// only by interface; this module never implements it.
type ToolIdentity interface {
	// ToolchainFamily reports the compiler family (e.g. "msvc", "clang",
	// "gcc") a scheduler would use to route a job to a compatible worker.
	ToolchainFamily() string
}

// AnnounceResult records the outcome of a single availability announcement
// or revocation, used by pkg/brokerage to label the pkg/metrics announce
// counter.
type AnnounceResult struct {
	Backend   string // "filesystem", "coordinator", or "none"
	Succeeded bool
	At        time.Time
}
