// Package health provides a TCP reachability checker, used by
// brokerctl doctor as a pre-flight probe independent of the coordinator
// client's own dial/timeout logic in pkg/coordinator.
package health
