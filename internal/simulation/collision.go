package simulation

import (
	"time"

	"github.com/vovakirdan/vetovoima/internal/events"
	"github.com/vovakirdan/vetovoima/internal/physics"
)

// CollisionDebounce collapses the burst of raw contacts one impact produces
// into a single PlayerCollided event.
type CollisionDebounce struct {
	threshold time.Duration
	last      time.Duration
}

// NewCollisionDebounce creates a debounce with the given minimum gap.
func NewCollisionDebounce(threshold time.Duration) CollisionDebounce {
	return CollisionDebounce{threshold: threshold}
}

// Reset forgets the previous contact. The next one is measured against
// time zero.
func (d *CollisionDebounce) Reset() {
	d.last = 0
}

// Accept records the contact and returns the event to emit when it arrives
// more than the threshold after the previously accepted one.
func (d *CollisionDebounce) Accept(c physics.Contact) (events.PlayerCollided, bool) {
	gap := c.At - d.last
	if gap <= d.threshold {
		return events.PlayerCollided{}, false
	}
	d.last = c.At
	return events.PlayerCollided{Gap: gap, Magnitude: c.Magnitude}, true
}
