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

// TrackedBlob is a blob identity persisting across frames. A zero value
// is inactive; use set to seed one from a Blob.
type TrackedBlob struct {
	ID uint64

	blob Blob // snapshot of the last matched Blob

	PredictedRow, PredictedCol float64
	TravelRow, TravelCol       float64
	TotalTravelRow             float64
	TotalTravelCol             float64

	StartRow, StartCol float64
	StartTimeMs        int64
	EventDurationMs    int64

	TimesUpdated int
	MaxSize      int
	MaxWidth     int
	MaxHeight    int

	NumDeadFrames    int
	MaxNumDeadFrames int

	PositionDiff    float64
	AreaDiff        float64
	AspectRatioDiff float64
	TemperatureDiff float64
	DirectionDiff   float64
	EdgePenalty     float64
	DeadFrameDiff   float64

	AvgPositionDiff    float64
	AvgAreaDiff        float64
	AvgAspectRatioDiff float64
	AvgTemperatureDiff float64
	AvgDirectionDiff   float64

	MaxDifference     float64
	AverageDifference float64

	HasUpdated bool
}

// Blob returns the snapshot of the last blob this track was matched to.
func (t TrackedBlob) Blob() Blob { return t.blob }

// IsActive reports whether the track is currently tracking anything.
func (t *TrackedBlob) IsActive() bool {
	return t.blob.isActive()
}

// set starts tracking a new blob, discarding any previous tracking
// data. id is the monotonically-increasing track identifier assigned
// by the tracker.
func (t *TrackedBlob) set(blob Blob, id uint64, nowMs int64) {
	*t = TrackedBlob{}
	t.ID = id
	t.blob = blob
	t.blob.clearAssigned()
	t.HasUpdated = true
	t.StartRow = blob.CentroidRow
	t.StartCol = blob.CentroidCol
	t.StartTimeMs = nowMs
	t.MaxSize = blob.NumPixels
	t.MaxWidth = blob.Width
	t.MaxHeight = blob.Height
	t.PredictedRow = -1
	t.PredictedCol = -1
}

// updateBlob updates the tracked blob from a matched candidate blob, in
// the exact order spec.md §4.4 requires: score first (against the
// still-previous snapshot), then integrate movement, then replace the
// snapshot, then roll the envelope maxima and dead-frame bookkeeping.
func (t *TrackedBlob) updateBlob(candidate Blob, cfg Config, nowMs int64) {
	t.EventDurationMs = nowMs - t.StartTimeMs

	difference := t.Difference(candidate, cfg)
	n := float64(t.TimesUpdated)
	t.AverageDifference = (t.AverageDifference*n + difference) / (n + 1)
	if difference > t.MaxDifference {
		t.MaxDifference = difference
	}
	t.AvgPositionDiff = (t.AvgPositionDiff*n + t.PositionDiff) / (n + 1)
	t.AvgAreaDiff = (t.AvgAreaDiff*n + t.AreaDiff) / (n + 1)
	t.AvgAspectRatioDiff = (t.AvgAspectRatioDiff*n + t.AspectRatioDiff) / (n + 1)
	t.AvgDirectionDiff = (t.AvgDirectionDiff*n + t.DirectionDiff) / (n + 1)
	t.AvgTemperatureDiff = (t.AvgTemperatureDiff*n + t.TemperatureDiff) / (n + 1)

	movementRow := candidate.CentroidRow - t.blob.CentroidRow
	movementCol := candidate.CentroidCol - t.blob.CentroidCol
	t.PredictedRow = candidate.CentroidRow + movementRow
	t.PredictedCol = candidate.CentroidCol + movementCol
	t.TravelRow += movementRow
	t.TravelCol += movementCol
	t.TotalTravelRow += math.Abs(movementRow)
	t.TotalTravelCol += math.Abs(movementCol)

	t.blob = candidate
	t.blob.clearAssigned()

	if candidate.NumPixels > t.MaxSize {
		t.MaxSize = candidate.NumPixels
	}
	if candidate.Width > t.MaxWidth {
		t.MaxWidth = candidate.Width
	}
	if candidate.Height > t.MaxHeight {
		t.MaxHeight = candidate.Height
	}

	t.HasUpdated = true
	if t.NumDeadFrames > t.MaxNumDeadFrames {
		t.MaxNumDeadFrames = t.NumDeadFrames
	}
	t.NumDeadFrames = 0
	t.TimesUpdated++
}

// Difference scores how dissimilar candidate is from this track. Lower
// is more similar; a score at or above cfg.MaxDifferenceThreshold is
// "no match". As a side effect it records each component (and the
// edge penalty) on the track, matching the original's mutation-as-you-
// score behaviour; only the last call before a match is retained.
func (t *TrackedBlob) Difference(candidate Blob, cfg Config) float64 {
	t.EdgePenalty = t.edgePenalty(candidate.CentroidCol, cfg)
	t.PositionDiff = t.positionDifference(candidate, cfg)
	t.AreaDiff = t.areaDifference(candidate, cfg)
	t.AspectRatioDiff = t.aspectRatioDifference(candidate, cfg)
	t.TemperatureDiff = t.temperatureDifference(candidate, cfg)
	t.DirectionDiff = t.directionDifference(candidate, cfg)
	t.DeadFrameDiff = float64(t.NumDeadFrames) * cfg.DeadFramePenalty()

	return t.PositionDiff + t.AreaDiff + t.AspectRatioDiff + t.TemperatureDiff + t.DirectionDiff
}

// edgePenalty softens the difference score when isTouchingSide reports
// the track as touching a side: the factor is 1 minus the candidate's
// distance from the centre column over half the width, so it is
// smallest for candidates near the centre. Tracks that isTouchingSide
// does not report get a factor of 1.
func (t *TrackedBlob) edgePenalty(candidateCol float64, cfg Config) float64 {
	if !t.isTouchingSide() {
		return 1
	}
	half := float64(Width) / 2
	return 1 - math.Abs(half-candidateCol)/half
}

func (t *TrackedBlob) positionDifference(candidate Blob, cfg Config) float64 {
	var diff float64
	if t.PredictedRow >= 0 && t.PredictedCol >= 0 {
		diff += math.Abs(t.PredictedCol-candidate.CentroidCol) * cfg.PositionPenalty
		diff += math.Abs(t.PredictedRow-candidate.CentroidRow) * cfg.PositionPenalty
	} else {
		diff += math.Abs(t.blob.CentroidCol-candidate.CentroidCol) * cfg.PositionPenalty
		diff += math.Abs(t.blob.CentroidRow-candidate.CentroidRow) * cfg.PositionPenalty
	}
	return diff * t.EdgePenalty
}

func (t *TrackedBlob) areaDifference(candidate Blob, cfg Config) float64 {
	diff := math.Abs(float64(t.blob.NumPixels-candidate.NumPixels)) * cfg.AreaPenalty
	return diff * t.EdgePenalty
}

func (t *TrackedBlob) aspectRatioDifference(candidate Blob, cfg Config) float64 {
	diff := math.Abs(t.blob.AspectRatio-candidate.AspectRatio) * cfg.AspectRatioPenalty
	return diff * t.EdgePenalty
}

func (t *TrackedBlob) temperatureDifference(candidate Blob, cfg Config) float64 {
	return math.Abs(t.blob.AvgTemperature-candidate.AvgTemperature) * cfg.TemperaturePenalty
}

// directionDifference is a binary penalty: if the track isn't touching
// a side, has updated more than once, and the latest implied direction
// disagrees in sign with the net travel so far, the full penalty
// applies. This is the corrected semantics spec.md §9 mandates
// (comparing two numeric signs), not the original C++'s int-vs-pointer
// comparison bug.
func (t *TrackedBlob) directionDifference(candidate Blob, cfg Config) float64 {
	latestDirection := t.PredictedCol - t.blob.CentroidCol
	if !t.isTouchingSide() && t.TimesUpdated > 1 && sign(latestDirection) != sign(t.TravelCol) {
		return cfg.DirectionPenalty
	}
	return 0
}

// isTouchingSide determines if the track is likely touching a vertical
// side of the frame. This predicate is preserved literally from the
// source even though the right-side branch reads as inverted from its
// evident intent (spec.md §9 open question); it is not "corrected"
// here.
func (t *TrackedBlob) isTouchingSide() bool {
	halfWidth := float64(t.blob.Width / 2)
	if t.blob.CentroidCol-halfWidth <= 1 {
		return true
	}
	if t.blob.CentroidCol+halfWidth <= float64(Width-1) {
		return true
	}
	return false
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// copyFrom overwrites t with another tracked blob's state, used to
// compact the tracked-blob slot array.
func (t *TrackedBlob) copyFrom(other TrackedBlob) {
	*t = other
}
