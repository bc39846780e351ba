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

// Package schedule gates the tracker to a recurring time-of-day window,
// so a host deployed where the target animal is only active at night
// (or only during daylight) doesn't waste cycles tracking the rest of
// the day.
package schedule

import (
	"time"

	"github.com/TheCacophonyProject/window"

	"github.com/TheCacophonyProject/thermal-tracker/tracker"
)

// Gate wraps a Tracker so that Ingest is a no-op outside a configured
// recurring window. An always-active window (start == end) disables
// gating entirely.
type Gate struct {
	tracker *tracker.Tracker
	window  *window.Window
}

// NewGate builds a Gate active between start and end times-of-day
// (wrapping past midnight if end is before start).
func NewGate(t *tracker.Tracker, start, end time.Time) *Gate {
	w, _ := window.New(start.Format("15:04"), end.Format("15:04"), 0, 0)
	return &Gate{
		tracker: t,
		window:  w,
	}
}

// Ingest forwards frame to the wrapped Tracker only while the window is
// active; outside the window it is silently dropped.
func (g *Gate) Ingest(frame tracker.Frame) error {
	if !g.window.Active() {
		return nil
	}
	return g.tracker.Ingest(frame)
}

// Active reports whether the recurring window is open right now.
func (g *Gate) Active() bool {
	return g.window.Active()
}

// Until returns how long until the window next opens, or zero if it is
// already open.
func (g *Gate) Until() time.Duration {
	return g.window.Until()
}

// Tracker returns the wrapped Tracker so the host can still reach
// introspection accessors and observer registration directly.
func (g *Gate) Tracker() *tracker.Tracker {
	return g.tracker
}
