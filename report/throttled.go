// thermal-tracker - track warm moving objects across a low-resolution
// thermal sensor grid
//  Copyright (C) 2018, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package report wraps tracker observers with delivery policy: rate
// limiting so a windy scene producing many spurious short tracks
// doesn't flood a downstream event sink.
package report

import (
	"time"

	"github.com/juju/ratelimit"

	"github.com/TheCacophonyProject/thermal-tracker/loglimiter"
	"github.com/TheCacophonyProject/thermal-tracker/tracker"
)

// throttledLogInterval bounds how often the "track-end event throttled"
// line repeats while a windy scene keeps the bucket empty.
const throttledLogInterval = time.Minute

// ThrottledEventListener is notified whenever a track-end event is
// dropped by throttling.
type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (nullListener) WhenThrottled() {}

// ThrottledTrackEndObserver wraps a tracker.TrackEndObserver with a
// token bucket so that a burst of track-end events collapses to at
// most one delivered per refill interval, with a configurable burst
// allowance.
type ThrottledTrackEndObserver struct {
	next     tracker.TrackEndObserver
	listener ThrottledEventListener
	bucket   *ratelimit.Bucket
	apply    bool
	logs     *loglimiter.LogLimiter
}

// NewThrottledTrackEndObserver wraps next using real wall-clock time.
// If listener is nil, no listener is notified of dropped events; they
// are still logged.
func NewThrottledTrackEndObserver(next tracker.TrackEndObserver, cfg ThrottleConfig, listener ThrottledEventListener) *ThrottledTrackEndObserver {
	return NewThrottledTrackEndObserverWithClock(next, cfg, listener, new(realClock))
}

// NewThrottledTrackEndObserverWithClock is NewThrottledTrackEndObserver
// with an injectable clock, for deterministic tests.
func NewThrottledTrackEndObserverWithClock(next tracker.TrackEndObserver, cfg ThrottleConfig, listener ThrottledEventListener, clock ratelimit.Clock) *ThrottledTrackEndObserver {
	capacity := int64(cfg.BucketSize / cfg.MinRefill)
	if capacity < 1 {
		capacity = 1
	}
	refillRate := 1 / cfg.MinRefill.Seconds()

	if listener == nil {
		listener = nullListener{}
	}

	return &ThrottledTrackEndObserver{
		next:     next,
		listener: listener,
		bucket:   ratelimit.NewBucketWithRateAndClock(refillRate, capacity, clock),
		apply:    cfg.ApplyThrottling,
		logs:     loglimiter.New(throttledLogInterval),
	}
}

// TrackEnded forwards to the wrapped observer if a token is available,
// otherwise drops the event and notifies the listener.
func (o *ThrottledTrackEndObserver) TrackEnded(track tracker.TrackedBlob, direction tracker.Direction) {
	if !o.apply || o.bucket.TakeAvailable(1) > 0 {
		o.next.TrackEnded(track, direction)
		return
	}
	o.logs.Print("track-end event throttled")
	o.listener.WhenThrottled()
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
