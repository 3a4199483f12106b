package frame

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFPS is the frame rate used when a Pacer has none configured.
const DefaultFPS = 60.0

// Pacer ticks a Queue on a virtual clock of FPS frames per second.
//
// With Realtime set, ticks are rate limited to FPS in wall-clock time as well;
// otherwise frames are produced as fast as the callbacks allow.
type Pacer struct {
	Queue    *Queue
	FPS      float64
	Realtime bool
}

// Run ticks until ctx is done, maxFrames ticks have run (maxFrames <= 0 means no limit),
// or the queue has nothing pending. afterFrame, if set, is called after each tick with the
// frame number and timestamp; an error from it stops the run and is returned.
func (p *Pacer) Run(ctx context.Context, maxFrames int, afterFrame func(n int, ts time.Duration) error) (int, error) {
	fps := p.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	limit := rate.Inf
	if p.Realtime {
		limit = rate.Limit(fps)
	}
	limiter := rate.NewLimiter(limit, 1)

	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if !p.Queue.Pending() {
			return n, nil
		}
		if err := limiter.Wait(ctx); err != nil {
			return n, err
		}

		ts := time.Duration(float64(n) / fps * float64(time.Second))
		p.Queue.Tick(ts)
		if afterFrame != nil {
			if err := afterFrame(n, ts); err != nil {
				return n + 1, err
			}
		}
		n++
	}
	return n, nil
}
