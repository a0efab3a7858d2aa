//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestStepPacerFollowsInterval(t *testing.T) {
	cases := []struct {
		interval time.Duration
		frames   int
		want     int
	}{
		{100 * time.Millisecond, 180, 30},
		{150 * time.Millisecond, 180, 20},
		{300 * time.Millisecond, 180, 10},
		{3 * time.Second, 600, 4},
	}
	for _, c := range cases {
		p := stepPacer{interval: c.interval}
		steps := 0
		// 60 frames per second.
		for k := 0; k < c.frames; k++ {
			steps += p.due(time.Duration(k) * time.Second / 60)
		}
		if steps != c.want {
			t.Fatalf("interval %v over %d frames: steps = %d, want %d", c.interval, c.frames, steps, c.want)
		}
	}
}

func TestStepPacerShortIntervalCatchesUp(t *testing.T) {
	p := stepPacer{interval: 5 * time.Millisecond}
	steps := 0
	for k := 0; k < 60; k++ {
		steps += p.due(time.Duration(k) * time.Second / 60)
	}
	// Every 5ms slot up to the last frame at 983ms, three or four per frame.
	if steps != 197 {
		t.Fatalf("steps = %d, want 197", steps)
	}
}

func TestStepPacerSkipsLongBacklog(t *testing.T) {
	p := stepPacer{interval: 10 * time.Millisecond}
	if got := p.due(0); got != 1 {
		t.Fatalf("due(0) = %d, want 1", got)
	}
	if got := p.due(time.Second); got != maxCatchUp {
		t.Fatalf("due(1s) = %d, want %d", got, maxCatchUp)
	}
	if got := p.due(time.Second); got != 0 {
		t.Fatalf("due(1s) again = %d, want 0", got)
	}
}
