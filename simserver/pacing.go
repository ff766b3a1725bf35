package simserver

import "time"

const pollsPerTick = 4

// pacer lets a tick through only once a full interval has elapsed, then
// realigns on the interval grid so the rate does not drift.
type pacer struct {
	interval time.Duration
	then     time.Time
}

func newPacer(interval time.Duration, start time.Time) *pacer {
	return &pacer{interval: interval, then: start}
}

func (p *pacer) ready(now time.Time) bool {
	elapsed := now.Sub(p.then)
	if elapsed <= p.interval {
		return false
	}

	p.then = now.Add(-(elapsed % p.interval))
	return true
}
