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

// Command thermal-tracker-sim plays a synthetic frame sequence through
// the tracker and reports the movement counters it produced. It has no
// real sensor or storage dependency; it exists to exercise the core
// pipeline end to end and to give a quick feel for how the scoring
// weights in a config file affect tracking behaviour.
package main

import (
	"log"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/thermal-tracker/hostconfig"
	"github.com/TheCacophonyProject/thermal-tracker/loglimiter"
	"github.com/TheCacophonyProject/thermal-tracker/report"
	"github.com/TheCacophonyProject/thermal-tracker/schedule"
	"github.com/TheCacophonyProject/thermal-tracker/tracker"
)

const frameInterval = 1000 / 9 * time.Millisecond // approx 9Hz, matching the sensor's typical cadence

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Steps      int    `arg:"-s,--steps" help:"number of frames the moving block travels"`
}

func procArgs() Args {
	args := Args{
		ConfigFile: "/etc/thermal-tracker.yaml",
		Steps:      12,
	}
	arg.MustParse(&args)
	return args
}

func main() {
	if err := runMain(); err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	conf, err := hostconfig.ParseConfigFile(args.ConfigFile)
	if err != nil {
		log.Printf("using default configuration (%v)", err)
		conf = &hostconfig.Config{
			Tracker:  tracker.DefaultConfig(),
			Throttle: report.DefaultThrottleConfig(),
		}
	}

	limiter := loglimiter.New(time.Second)

	clock := &simClock{}
	t := tracker.NewTracker(conf.Tracker, clock)

	t.SetTrackStartObserver(tracker.TrackStartObserverFunc(func(track tracker.TrackedBlob) {
		limiter.Printf("track %d started", track.ID)
	}))

	logEnd := tracker.TrackEndObserverFunc(func(track tracker.TrackedBlob, direction tracker.Direction) {
		log.Printf("track %d ended: %s (updated %d times)", track.ID, direction, track.TimesUpdated)
	})
	t.SetTrackEndObserver(report.NewThrottledTrackEndObserverWithClock(logEnd, conf.Throttle, nil, new(fixedIntervalClock)))

	var gate *schedule.Gate
	if !conf.WindowStart.IsZero() {
		gate = schedule.NewGate(t, conf.WindowStart, conf.WindowEnd)
	}

	fm := newFrameMaker()
	for _, frame := range fm.backgroundOnly(conf.Tracker.RunningAverageSize) {
		clock.advance(frameInterval)
		if err := ingest(t, gate, frame); err != nil {
			return err
		}
	}

	for _, frame := range fm.movingBlock(1, 2, 0, 1, args.Steps) {
		clock.advance(frameInterval)
		if err := ingest(t, gate, frame); err != nil {
			return err
		}
	}

	var counters [5]int64
	t.ReadMovementCounters(&counters)
	log.Printf("movement counters: LEFT=%d RIGHT=%d UP=%d DOWN=%d NO_DIRECTION=%d",
		counters[tracker.Left], counters[tracker.Right], counters[tracker.Up], counters[tracker.Down], counters[tracker.NoDirection])

	return nil
}

func ingest(t *tracker.Tracker, gate *schedule.Gate, frame tracker.Frame) error {
	if gate != nil {
		return gate.Ingest(frame)
	}
	return t.Ingest(frame)
}

// fixedIntervalClock satisfies ratelimit.Clock for the sim's throttled
// observer without needing to share the tracker's simClock type.
type fixedIntervalClock struct{ t time.Time }

func (c *fixedIntervalClock) Now() time.Time {
	if c.t.IsZero() {
		c.t = time.Now()
	}
	return c.t
}

func (c *fixedIntervalClock) Sleep(d time.Duration) {
	c.t = c.t.Add(d)
}
