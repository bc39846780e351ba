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

import "math"

// BackgroundModel maintains a per-pixel {mean, stddev} estimate of the
// empty scene. It is built from an initial fixed-size sample using
// Welford's method, then kept current with an exponential moving
// average once steady state is reached.
type BackgroundModel struct {
	mean     [Height][Width]float64
	variance [Height][Width]float64 // M2 while building, stddev once ready
	count    int

	runningAverageSize int
}

// newBackgroundModel creates a model that requires runningAverageSize
// frames to finish building.
func newBackgroundModel(runningAverageSize int) *BackgroundModel {
	return &BackgroundModel{runningAverageSize: runningAverageSize}
}

// Reset clears the frame count so the next frame re-seeds the model.
// Accumulated mean/variance values are left in place until the first
// post-reset frame overwrites them, matching the original
// reset_background (which only zeroes num_background_frames).
func (bm *BackgroundModel) Reset() {
	bm.count = 0
}

// IsReady reports whether the model has finished its initial build.
func (bm *BackgroundModel) IsReady() bool {
	return bm.count >= bm.runningAverageSize
}

// AddInitial feeds a frame into the offline Welford estimator used
// while the background is still being built. Call this only while
// !IsReady().
func (bm *BackgroundModel) AddInitial(frame Frame) {
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			x := frame[r][c]
			if bm.count == 0 {
				bm.mean[r][c] = x
				bm.variance[r][c] = 0
				continue
			}
			meanPrev := bm.mean[r][c]
			delta := x - meanPrev
			meanNew := meanPrev + delta/float64(bm.count+1)
			bm.mean[r][c] += delta / float64(bm.count+1)
			bm.variance[r][c] += delta * (x - meanNew)
		}
	}
	bm.count++

	if bm.count == bm.runningAverageSize {
		for r := 0; r < Height; r++ {
			for c := 0; c < Width; c++ {
				bm.variance[r][c] = math.Sqrt(bm.variance[r][c] / float64(bm.count-1))
			}
		}
	}
}

// AddRolling folds a frame into the running background using an
// exponentially-weighted mean and scale estimate. The resulting
// "stddev" is a robust scale estimate, not a true standard deviation;
// that drift is an accepted compromise (it only needs to support the
// activity gate in IsActive).
func (bm *BackgroundModel) AddRolling(frame Frame) {
	r8 := float64(bm.runningAverageSize)
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			x := frame[r][c]
			newMean := (bm.mean[r][c]*(r8-1) + x) / r8
			incrementalVariance := math.Abs(x - newMean)
			bm.variance[r][c] = (bm.variance[r][c]*(r8-1) + incrementalVariance) / r8
			bm.mean[r][c] = newMean
		}
	}
}

// IsActive reports whether a pixel's deviation from the background
// exceeds both the variance-scaled gate and the absolute floor. NaN or
// infinite input never satisfies either comparison, so it is reported
// as inactive.
func (bm *BackgroundModel) IsActive(x, mean, sigma, varianceScalar, minDifferential float64) bool {
	diff := math.Abs(x - mean)
	if math.IsInf(diff, 0) {
		return false
	}
	return diff > sigma*varianceScalar && diff > minDifferential
}

// Mean returns the per-pixel background mean frame.
func (bm *BackgroundModel) Mean() Frame {
	return bm.mean
}

// StdDev returns the per-pixel background scale estimate.
func (bm *BackgroundModel) StdDev() Frame {
	return bm.variance
}

// AverageTemperature returns the mean of all background pixel means.
func (bm *BackgroundModel) AverageTemperature() float64 {
	var total float64
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			total += bm.mean[r][c]
		}
	}
	return total / float64(Height*Width)
}
