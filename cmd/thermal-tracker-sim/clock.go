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

package main

import "time"

// simClock implements tracker.Clock with a caller-advanced counter, so
// a playback run can simulate a fixed frame cadence without sleeping.
type simClock struct {
	millis int64
}

func (c *simClock) NowMillis() int64 {
	return c.millis
}

func (c *simClock) advance(d time.Duration) {
	c.millis += d.Milliseconds()
}
