// Package identity resolves the stable local identifier used both as the
// rendezvous sentinel filename and as the self-filter key applied to every
// worker list the brokerage returns (spec §4.2).
package identity

import (
	"os"

	"github.com/cuemby/brokerage/pkg/log"
	"github.com/cuemby/brokerage/pkg/types"
)

// Resolve returns the host identity for this process. On Darwin it prefers
// the IPv4 dotted-quad bound to en0 (see identity_darwin.go); everywhere
// else, and as the Darwin fallback, it is the OS hostname. Resolution
// failures fall back to an empty identity rather than returning an error —
// a degenerate but still self-consistent sentinel path, per spec §4.2.
func Resolve() types.HostIdentity {
	if id, ok := primaryInterfaceAddress(); ok {
		return types.HostIdentity(id)
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.WithComponent("identity").Warn().Err(err).Msg("failed to resolve hostname, using empty identity")
		return types.HostIdentity("")
	}
	return types.HostIdentity(hostname)
}
