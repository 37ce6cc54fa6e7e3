// Package types holds the small set of value types shared across the
// brokerage's packages (pkg/brokerage, pkg/coordinator, pkg/fsbackend):
// HostIdentity, WorkerList, and the PendingListUpdate hand-off record. It
// intentionally does not define the coordinator's wire messages (see
// pkg/wire) or its on-disk layout (see pkg/fsbackend) — those are owned by
// the packages that implement them.
package types
