package brokerage

import (
	"testing"

	"github.com/cuemby/brokerage/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFilterSelfAndLoopbackDropsSelfCaseInsensitively(t *testing.T) {
	entries := []string{"Build-07", "build-09", "BUILD-07"}
	got := filterSelfAndLoopback(types.HostIdentity("build-07"), entries)
	assert.Equal(t, types.WorkerList{"build-09"}, got)
}

func TestFilterSelfAndLoopbackDropsLiteralLoopback(t *testing.T) {
	entries := []string{"127.0.0.1", "10.0.0.5"}
	got := filterSelfAndLoopback(types.HostIdentity("build-07"), entries)
	assert.Equal(t, types.WorkerList{"10.0.0.5"}, got)
}

func TestFilterSelfAndLoopbackPreservesOrder(t *testing.T) {
	entries := []string{"build-09", "build-03", "build-01"}
	got := filterSelfAndLoopback(types.HostIdentity("build-07"), entries)
	assert.Equal(t, types.WorkerList{"build-09", "build-03", "build-01"}, got)
}

func TestFilterSelfAndLoopbackOnlyExcludesLiteralLoopbackAddress(t *testing.T) {
	// A loopback address outside the 127.0.0.1 literal is NOT filtered —
	// this asymmetry is intentional (spec.md §4.6).
	entries := []string{"127.0.0.2", "::1"}
	got := filterSelfAndLoopback(types.HostIdentity("build-07"), entries)
	assert.Equal(t, types.WorkerList{"127.0.0.2", "::1"}, got)
}
