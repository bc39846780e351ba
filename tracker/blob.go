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

// Blob is an aggregate of adjacent active pixels with derived geometry
// and temperature. Blobs are transient: constructed at the start of a
// frame's extraction pass and discarded at the end of it once matching
// has consumed them.
type Blob struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
	CentroidRow    float64
	CentroidCol    float64
	Width          int
	Height         int
	AspectRatio    float64
	AvgTemperature float64
	NumPixels      int

	assigned bool
	totalRow float64
	totalCol float64
}

// clear resets the blob to its empty, inactive state.
func (b *Blob) clear() {
	*b = Blob{}
}

// addPixel absorbs a pixel into the blob, updating its running centroid,
// bounding box, size and average temperature in O(1).
func (b *Blob) addPixel(p pixel) {
	if b.NumPixels == 0 {
		b.MinRow, b.MaxRow = p.row, p.row
		b.MinCol, b.MaxCol = p.col, p.col
	} else {
		if p.row < b.MinRow {
			b.MinRow = p.row
		}
		if p.row > b.MaxRow {
			b.MaxRow = p.row
		}
		if p.col < b.MinCol {
			b.MinCol = p.col
		}
		if p.col > b.MaxCol {
			b.MaxCol = p.col
		}
	}

	b.totalRow += float64(p.row)
	b.totalCol += float64(p.col)
	b.AvgTemperature = (b.AvgTemperature*float64(b.NumPixels) + p.temperature) / float64(b.NumPixels+1)
	b.NumPixels++

	b.CentroidRow = b.totalRow / float64(b.NumPixels)
	b.CentroidCol = b.totalCol / float64(b.NumPixels)

	b.Width = b.MaxCol - b.MinCol + 1
	b.Height = b.MaxRow - b.MinRow + 1
	b.AspectRatio = float64(b.Width) / float64(maxInt(1, b.Height))
}

// copyFrom overwrites b's aggregate fields with other's, including the
// assigned flag, matching the original Blob::copy behaviour.
func (b *Blob) copyFrom(other Blob) {
	*b = other
}

// isActive reports whether the blob currently holds at least one pixel.
func (b *Blob) isActive() bool {
	return b.NumPixels > 0
}

func (b *Blob) setAssigned() {
	b.assigned = true
}

func (b *Blob) clearAssigned() {
	b.assigned = false
}

func (b *Blob) isAssigned() bool {
	return b.assigned
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
