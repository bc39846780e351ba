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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlobIsActiveOnlyWithPixels(t *testing.T) {
	var b Blob
	assert.False(t, b.isActive())

	b.addPixel(pixel{row: 1, col: 1, temperature: 30})
	assert.True(t, b.isActive())
}

func TestBlobAddPixelUpdatesGeometry(t *testing.T) {
	var b Blob
	b.addPixel(pixel{row: 1, col: 2, temperature: 30})
	b.addPixel(pixel{row: 2, col: 3, temperature: 32})

	assert.Equal(t, 2, b.NumPixels)
	assert.Equal(t, 1, b.MinRow)
	assert.Equal(t, 2, b.MaxRow)
	assert.Equal(t, 2, b.MinCol)
	assert.Equal(t, 3, b.MaxCol)
	assert.Equal(t, 2, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.InDelta(t, 1.5, b.CentroidRow, 1e-9)
	assert.InDelta(t, 2.5, b.CentroidCol, 1e-9)
	assert.InDelta(t, 31.0, b.AvgTemperature, 1e-9)
	assert.InDelta(t, 1.0, b.AspectRatio, 1e-9)
}

func TestBlobAspectRatioGuardsZeroHeight(t *testing.T) {
	var b Blob
	b.addPixel(pixel{row: 0, col: 0, temperature: 25})
	assert.Equal(t, 1, b.Height)
	assert.InDelta(t, 1.0, b.AspectRatio, 1e-9)
}

func TestBlobClearResetsToInactive(t *testing.T) {
	var b Blob
	b.addPixel(pixel{row: 0, col: 0, temperature: 25})
	b.setAssigned()

	b.clear()

	assert.False(t, b.isActive())
	assert.False(t, b.isAssigned())
	assert.Equal(t, 0, b.NumPixels)
}

func TestBlobAssignedFlag(t *testing.T) {
	var b Blob
	assert.False(t, b.isAssigned())
	b.setAssigned()
	assert.True(t, b.isAssigned())
	b.clearAssigned()
	assert.False(t, b.isAssigned())
}

func TestBlobCopyFromOverwritesAggregateFields(t *testing.T) {
	var source Blob
	source.addPixel(pixel{row: 0, col: 0, temperature: 40})
	source.setAssigned()

	var dest Blob
	dest.addPixel(pixel{row: 3, col: 3, temperature: 10})

	dest.copyFrom(source)

	assert.Equal(t, source, dest)
	assert.True(t, dest.isAssigned())
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	a := pixel{row: 0, col: 0}
	b := pixel{row: 1, col: 1}
	assert.Equal(t, adjacent(a, b, 0), adjacent(b, a, 0))
	assert.True(t, adjacent(a, b, 0))
}

func TestAdjacencyRespectsFuzz(t *testing.T) {
	a := pixel{row: 0, col: 0}
	b := pixel{row: 0, col: 2}
	assert.False(t, adjacent(a, b, 0))
	assert.True(t, adjacent(a, b, 1))
}
