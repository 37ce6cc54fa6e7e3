package brokerage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleFirstCallIsAlwaysDue(t *testing.T) {
	var th throttle
	assert.True(t, th.due(time.Now()))
}

func TestThrottleNotDueWithinWindow(t *testing.T) {
	var th throttle
	start := time.Now()
	th.restart(start)

	assert.False(t, th.due(start.Add(9*time.Second)))
}

func TestThrottleDueAfterWindow(t *testing.T) {
	var th throttle
	start := time.Now()
	th.restart(start)

	assert.True(t, th.due(start.Add(11*time.Second)))
}

func TestThrottleRestartResetsWindow(t *testing.T) {
	var th throttle
	start := time.Now()
	th.restart(start)
	th.restart(start.Add(9 * time.Second))

	assert.False(t, th.due(start.Add(15*time.Second)))
}
