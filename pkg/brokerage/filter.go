package brokerage

import (
	"strings"

	"github.com/cuemby/brokerage/pkg/types"
)

const loopbackLiteral = "127.0.0.1"

// filterSelfAndLoopback drops any entry equal to identity (case-insensitive)
// or equal to the literal string "127.0.0.1", preserving the order of the
// remaining entries (spec.md §4.6).
//
// Only the literal dotted-quad "127.0.0.1" is excluded, not the full
// 127.0.0.0/8 range or "::1" — a deliberate asymmetry carried over from the
// original design rather than generalized here.
func filterSelfAndLoopback(identity types.HostIdentity, entries []string) types.WorkerList {
	self := strings.ToLower(identity.String())

	filtered := make(types.WorkerList, 0, len(entries))
	for _, entry := range entries {
		if strings.ToLower(entry) == self {
			continue
		}
		if entry == loopbackLiteral {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}
