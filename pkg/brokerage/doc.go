// Package brokerage is the module's public façade: FindWorkers,
// SetAvailability, and the self/loopback filtering and availability
// throttle that sit on top of pkg/fsbackend and pkg/coordinator (spec.md
// §4, SPEC_FULL.md §4.1-§4.6).
//
// A Facade is not reentrant from the same goroutine while a FindWorkers
// call is blocked awaiting a coordinator response (SPEC_FULL.md §5).
package brokerage
