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
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	ms int64
}

func (c *fakeClock) NowMillis() int64 {
	return c.ms
}

func (c *fakeClock) advance(ms int64) {
	c.ms += ms
}

func frameWithBlock(background, hot float64, row, col, size int) Frame {
	f := uniformFrame(background)
	for r := row; r < row+size && r < Height; r++ {
		for c := col; c < col+size && c < Width; c++ {
			f[r][c] = hot
		}
	}
	return f
}

// warmUp feeds enough identical background frames to finish the
// initial build, using the tracker's own configured running average
// size.
func warmUp(t *testing.T, tr *Tracker, background float64) {
	t.Helper()
	for !tr.IsBackgroundReady() {
		require.NoError(t, tr.Ingest(uniformFrame(background)))
	}
}

func TestScenarioWarmUpOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 30 // reduced from the documented 800 for test speed; mechanics are identical
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)

	for i := 0; i < cfg.RunningAverageSize; i++ {
		assert.False(t, tr.IsBackgroundReady())
		require.NoError(t, tr.Ingest(uniformFrame(22.0)))
	}

	assert.True(t, tr.IsBackgroundReady())
	assert.Equal(t, 0, tr.NumLastBlobs())

	stddev := tr.BackgroundStdDev()
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			assert.InDelta(t, 0.0, stddev[r][c], 1e-9)
		}
	}

	var counters [numDirections]int64
	tr.ReadMovementCounters(&counters)
	for _, c := range counters {
		assert.Equal(t, int64(0), c)
	}
}

func TestScenarioSingleLeftToRightCrossing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 30
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)
	warmUp(t, tr, 22.0)

	var ended []TrackedBlob
	var directions []Direction
	tr.SetTrackEndObserver(TrackEndObserverFunc(func(track TrackedBlob, direction Direction) {
		ended = append(ended, track)
		directions = append(directions, direction)
	}))

	col := 2
	for col <= 13 {
		clock.advance(100)
		require.NoError(t, tr.Ingest(frameWithBlock(22.0, 30.0, 1, col, 2)))
		col++
	}
	// let the track age out after the block vanishes
	for i := 0; i < cfg.MaxDeadFrames+1; i++ {
		clock.advance(100)
		require.NoError(t, tr.Ingest(uniformFrame(22.0)))
	}

	var counters [numDirections]int64
	tr.ReadMovementCounters(&counters)

	assert.Equal(t, int64(1), counters[Right])
	assert.Equal(t, int64(0), counters[Left])
	require.Len(t, directions, 1)
	assert.Equal(t, Right, directions[0])
	require.Len(t, ended, 1)
	assert.GreaterOrEqual(t, ended[0].TimesUpdated, 10)
	assert.Greater(t, ended[0].TravelCol, cfg.MinimumTravelThreshold)
}

func TestScenarioSimultaneousBidirectional(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 30
	cfg.MinBlobSize = 2
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)
	warmUp(t, tr, 22.0)

	var directions []Direction
	var ids []uint64
	tr.SetTrackEndObserver(TrackEndObserverFunc(func(track TrackedBlob, direction Direction) {
		directions = append(directions, direction)
		ids = append(ids, track.ID)
	}))

	// Single-row, two-column blocks on row 0 and row 3: with the
	// default adjacency fuzz of 1, rows 3 apart (max(dRow,dCol) > 2)
	// can never merge into one blob regardless of how close the two
	// blocks get column-wise as they cross mid-frame. Each block is two
	// pixels, so MinBlobSize is lowered to 2 to keep them from being
	// pruned.
	leftCol, rightCol := 13, 2
	for i := 0; i < 10; i++ {
		f := uniformFrame(22.0)
		for c := rightCol; c < rightCol+2; c++ {
			f[0][c] = 30.0
		}
		for c := leftCol; c < leftCol+2; c++ {
			f[3][c] = 30.0
		}
		clock.advance(100)
		require.NoError(t, tr.Ingest(f))
		rightCol++
		leftCol--
	}
	for i := 0; i < cfg.MaxDeadFrames+1; i++ {
		clock.advance(100)
		require.NoError(t, tr.Ingest(uniformFrame(22.0)))
	}

	var counters [numDirections]int64
	tr.ReadMovementCounters(&counters)
	assert.Equal(t, int64(1), counters[Left])
	assert.Equal(t, int64(1), counters[Right])
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestScenarioBriefDisappearance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 30
	cfg.MaxDeadFrames = 4
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)
	warmUp(t, tr, 22.0)

	var maxDead []int
	tr.SetTrackEndObserver(TrackEndObserverFunc(func(track TrackedBlob, direction Direction) {
		maxDead = append(maxDead, track.MaxNumDeadFrames)
	}))

	col := 1
	for i := 0; i < 10; i++ {
		clock.advance(100)
		if i == 5 {
			require.NoError(t, tr.Ingest(uniformFrame(22.0))) // suppressed frame
		} else {
			require.NoError(t, tr.Ingest(frameWithBlock(22.0, 30.0, 1, col, 3)))
		}
		col++
	}
	for i := 0; i < cfg.MaxDeadFrames+1; i++ {
		clock.advance(100)
		require.NoError(t, tr.Ingest(uniformFrame(22.0)))
	}

	require.Len(t, maxDead, 1)
	assert.Equal(t, 1, maxDead[0])
}

func TestScenarioOversaturation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 30
	cfg.MinBlobSize = 1
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)
	warmUp(t, tr, 22.0)

	// Twelve single-pixel hot spots spread across rows 0 and 3, spaced
	// three columns apart, so that with the default adjacency fuzz no
	// two are ever 8-connected (dRow=3 or dCol>=3 exceeds 1+fuzz=2 for
	// every pair). More than MaxBlobs distinguishable blobs.
	f := uniformFrame(22.0)
	for _, c := range []int{0, 3, 6, 9, 12, 15} {
		f[0][c] = 30.0
		f[3][c] = 30.0
	}

	require.NoError(t, tr.Ingest(f))

	assert.Equal(t, MaxBlobs, tr.NumLastBlobs())
}

func TestScenarioStationaryReabsorption(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RunningAverageSize = 10
	cfg.UnchangedFrameDelay = 3
	cfg.MaxDeadFrames = 4
	clock := &fakeClock{}
	tr := NewTracker(cfg, clock)
	warmUp(t, tr, 22.0)

	var directions []Direction
	tr.SetTrackEndObserver(TrackEndObserverFunc(func(track TrackedBlob, direction Direction) {
		directions = append(directions, direction)
	}))

	row, col := 1, 5
	block := frameWithBlock(22.0, 30.0, row, col, 2)

	// A block that never moves is a track that never disappears from
	// matching until the background itself catches up: past
	// UnchangedFrameDelay frames the rolling average starts folding the
	// hot pixels in, eventually pulling their diff below the activity
	// gate. Once extraction stops finding it, the now-untouched track
	// ages out with zero net travel.
	for i := 0; i < 200; i++ {
		clock.advance(100)
		require.NoError(t, tr.Ingest(block))
	}

	mean := tr.BackgroundMean()
	assert.Greater(t, mean[row][col], 25.0, "background should have absorbed the stationary block")

	require.Len(t, directions, 1)
	assert.Equal(t, NoDirection, directions[0])
}
