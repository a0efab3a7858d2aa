//go:build !tinygo

package hal

import "time"

const defaultStepInterval = 100 * time.Millisecond

// maxCatchUp bounds the steps run for one late frame.
const maxCatchUp = 4

// stepPacer schedules fixed-interval loop steps from a frame-driven caller
// such as the window's Update.
type stepPacer struct {
	interval time.Duration
	next     time.Duration
}

// due returns the number of steps owed at now and advances the schedule.
// A backlog longer than maxCatchUp is skipped, not replayed.
func (p *stepPacer) due(now time.Duration) int {
	if p.interval <= 0 {
		p.interval = defaultStepInterval
	}
	if now < p.next {
		return 0
	}
	n := int((now-p.next)/p.interval) + 1
	p.next += time.Duration(n) * p.interval
	if n > maxCatchUp {
		n = maxCatchUp
	}
	return n
}
