package identity

import (
	"os"
	"runtime"
	"testing"

	"github.com/cuemby/brokerage/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestResolveMatchesHostnameOnNonDarwin(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin prefers en0's IPv4 address over the hostname")
	}

	hostname, err := os.Hostname()
	if err != nil {
		t.Skipf("os.Hostname unavailable: %v", err)
	}

	got := Resolve()
	assert.Equal(t, hostname, got.String())
}

func TestHostIdentityStringer(t *testing.T) {
	id := types.HostIdentity("build-07")
	assert.Equal(t, "build-07", id.String())
}
