package brokerage

import "time"

// throttleWindow is the minimum elapsed time between successful
// re-announcements while already available (spec.md §4.5).
const throttleWindow = 10_000 * time.Millisecond

// throttle tracks the monotonic timer described in spec.md §4.1
// ("ThrottleTimer"). It is zero (never announced) until the first
// SetAvailability call; Facade.SetAvailability restarts it on every
// availability transition, whether or not the backend write succeeded, and
// after every successful re-announcement.
type throttle struct {
	lastAnnounce time.Time
}

// elapsed reports how long it has been since the last successful
// announcement. A zero lastAnnounce (never announced) reports an elapsed
// duration far beyond the window so the first announcement is never
// throttled.
func (t *throttle) elapsed(now time.Time) time.Duration {
	if t.lastAnnounce.IsZero() {
		return throttleWindow + time.Second
	}
	return now.Sub(t.lastAnnounce)
}

// due reports whether throttleWindow has elapsed since the last
// announcement.
func (t *throttle) due(now time.Time) bool {
	return t.elapsed(now) >= throttleWindow
}

// restart resets the timer to now, as happens after every successful
// re-announcement.
func (t *throttle) restart(now time.Time) {
	t.lastAnnounce = now
}
