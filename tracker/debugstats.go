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

package tracker

import (
	"fmt"
	"strings"
)

// value tracks the running min/max/average of a single scoring
// dimension across however many samples have been fed to it.
type value struct {
	name  string
	count int
	min   float64
	max   float64
	total float64
}

func (v *value) update(x float64) {
	if v.count == 0 || x < v.min {
		v.min = x
	}
	if v.count == 0 || x > v.max {
		v.max = x
	}
	v.total += x
	v.count++
}

func (v *value) average() float64 {
	if v.count == 0 {
		return 0
	}
	return v.total / float64(v.count)
}

func (v *value) String() string {
	return fmt.Sprintf("%s: min=%.2f max=%.2f avg=%.2f (n=%d)", v.name, v.min, v.max, v.average(), v.count)
}

// DebugStats accumulates per-dimension min/max/average statistics
// across every match made by a Tracker, for offline tuning of the
// scoring weights in Config. It is not wired into Ingest automatically;
// a host wanting this introspection calls Observe from its own
// TrackEndObserver or after each match it cares about.
type DebugStats struct {
	position    value
	area        value
	aspectRatio value
	temperature value
	direction   value
	total       value
}

// NewDebugStats returns a ready-to-use, zeroed DebugStats.
func NewDebugStats() *DebugStats {
	return &DebugStats{
		position:    value{name: "position"},
		area:        value{name: "area"},
		aspectRatio: value{name: "aspect_ratio"},
		temperature: value{name: "temperature"},
		direction:   value{name: "direction"},
		total:       value{name: "total"},
	}
}

// Observe folds one track's last-recorded difference components into
// the running statistics. Call it after a successful match (e.g. from
// a TrackEndObserver reading the final snapshot, or per-frame from a
// host that wants live tuning feedback).
func (d *DebugStats) Observe(t TrackedBlob) {
	d.position.update(t.PositionDiff)
	d.area.update(t.AreaDiff)
	d.aspectRatio.update(t.AspectRatioDiff)
	d.temperature.update(t.TemperatureDiff)
	d.direction.update(t.DirectionDiff)
	d.total.update(t.PositionDiff + t.AreaDiff + t.AspectRatioDiff + t.TemperatureDiff + t.DirectionDiff)
}

// String renders a multi-line human-readable summary, one dimension
// per line.
func (d *DebugStats) String() string {
	var b strings.Builder
	for _, v := range []*value{&d.position, &d.area, &d.aspectRatio, &d.temperature, &d.direction, &d.total} {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}
