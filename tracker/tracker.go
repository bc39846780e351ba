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

// Tracker is the whole pipeline: background modelling, blob extraction,
// inter-frame matching, and track lifecycle/event classification. A
// Tracker is not safe for concurrent use; the host drives Ingest
// synchronously at a fixed cadence.
type Tracker struct {
	cfg        Config
	background *BackgroundModel
	clock      Clock

	tracks      [MaxBlobs]TrackedBlob
	nextTrackID uint64

	numLastBlobs       int
	numUnchangedFrames int

	movementCounters [numDirections]int64
	movementChanged  bool

	onTrackStart TrackStartObserver
	onTrackEnd   TrackEndObserver
}

// NewTracker constructs a tracker in background-building state. clock
// supplies the monotonic-millisecond timestamps used for track ages and
// durations.
func NewTracker(cfg Config, clock Clock) *Tracker {
	return &Tracker{
		cfg:        cfg,
		background: newBackgroundModel(cfg.RunningAverageSize),
		clock:      clock,
	}
}

// SetTrackStartObserver registers the handler fired, synchronously and
// by value, whenever a new track is promoted. Pass nil to clear it.
func (t *Tracker) SetTrackStartObserver(o TrackStartObserver) {
	t.onTrackStart = o
}

// SetTrackEndObserver registers the handler fired, synchronously and by
// value, whenever a track is finalised. Pass nil to clear it.
func (t *Tracker) SetTrackEndObserver(o TrackEndObserver) {
	t.onTrackEnd = o
}

// Ingest processes one frame to completion: background phase while
// warming up, otherwise extraction, matching, ageing, promotion and the
// background-update decision, in that order. The caller must not
// re-enter Ingest from an observer callback.
func (t *Tracker) Ingest(frame Frame) error {
	if !t.background.IsReady() {
		t.background.AddInitial(frame)
		t.numLastBlobs = 0
		return nil
	}

	now := t.clock.NowMillis()

	blobs, numBlobs := t.extractBlobs(frame)
	t.numLastBlobs = numBlobs

	t.match(&blobs, now)
	t.age(now)
	t.promote(&blobs, numBlobs, now)
	t.updateBackground(numBlobs, frame)

	return nil
}

// extractBlobs runs active-pixel detection followed by the sort-queue
// connected-component grouping and small-blob pruning described in
// spec §4.2. It never allocates beyond the fixed W·H and B buffers.
func (t *Tracker) extractBlobs(frame Frame) (blobs [MaxBlobs]Blob, numBlobs int) {
	mean := t.background.Mean()
	stddev := t.background.StdDev()

	var active [Height * Width]pixel
	numActive := 0
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			x := frame[r][c]
			if t.background.IsActive(x, mean[r][c], stddev[r][c], t.cfg.ActivePixelVarianceScalar, t.cfg.MinimumTemperatureDiff) {
				active[numActive] = pixel{col: c, row: r, temperature: x}
				numActive++
			}
		}
	}

	remaining := numActive
	for remaining > 0 && numBlobs < MaxBlobs {
		var queue [Height * Width]pixel
		queue[0] = active[0]
		queueLen := 1
		remaining--
		copy(active[:remaining], active[1:remaining+1])

		var blob Blob
		for qi := 0; qi < queueLen; qi++ {
			seed := queue[qi]

			compacted := 0
			for k := 0; k < remaining; k++ {
				candidate := active[k]
				if adjacent(seed, candidate, t.cfg.AdjacencyFuzz) {
					queue[queueLen] = candidate
					queueLen++
				} else {
					active[compacted] = candidate
					compacted++
				}
			}
			remaining = compacted

			blob.addPixel(seed)
		}

		blobs[numBlobs] = blob
		numBlobs++
	}

	kept := 0
	for i := 0; i < numBlobs; i++ {
		if blobs[i].NumPixels >= t.cfg.MinBlobSize {
			blobs[kept] = blobs[i]
			kept++
		}
	}
	for i := kept; i < numBlobs; i++ {
		blobs[i].clear()
	}
	numBlobs = kept

	return blobs, numBlobs
}

// match builds the B×B difference matrix and repeatedly assigns the
// globally lowest scoring pair below the match threshold, per spec
// §4.5 step 2-3. It is a deliberate greedy sweep, not the optimal
// (Hungarian) assignment: with B=8 the worst case is trivial, and a
// global-min greedy pass is simpler to reason about and test.
func (t *Tracker) match(blobs *[MaxBlobs]Blob, now int64) {
	for i := range t.tracks {
		t.tracks[i].HasUpdated = false
	}
	for i := range blobs {
		blobs[i].clearAssigned()
	}

	threshold := t.cfg.MaxDifferenceThreshold
	var matrix [MaxBlobs][MaxBlobs]float64
	for i := range t.tracks {
		for j := range blobs {
			if t.tracks[i].IsActive() && blobs[j].isActive() {
				matrix[i][j] = t.tracks[i].Difference(blobs[j], t.cfg)
			} else {
				matrix[i][j] = threshold
			}
		}
	}

	for {
		bestI, bestJ := -1, -1
		best := threshold
		for i := 0; i < MaxBlobs; i++ {
			for j := 0; j < MaxBlobs; j++ {
				if matrix[i][j] < best {
					best = matrix[i][j]
					bestI, bestJ = i, j
				}
			}
		}
		if bestI < 0 {
			return
		}

		t.tracks[bestI].updateBlob(blobs[bestJ], t.cfg, now)
		blobs[bestJ].setAssigned()

		for j := 0; j < MaxBlobs; j++ {
			matrix[bestI][j] = threshold
		}
		for i := 0; i < MaxBlobs; i++ {
			matrix[i][bestJ] = threshold
		}
	}
}

// age increments the dead-frame counter of every track that went
// unmatched this frame, finalises any that have exceeded the grace
// period, then compacts the surviving tracks toward the front.
func (t *Tracker) age(now int64) {
	for i := range t.tracks {
		track := &t.tracks[i]
		if !track.IsActive() {
			continue
		}
		if track.HasUpdated {
			continue
		}
		track.NumDeadFrames++
		if track.NumDeadFrames >= t.cfg.MaxDeadFrames {
			t.finalize(track, now)
		}
	}
	t.compact()
}

// finalize classifies a dying track's net travel, updates the movement
// counters, fires the track-end observer once per triggered dimension
// (or once with NoDirection if neither fired), and clears the slot.
func (t *Tracker) finalize(track *TrackedBlob, now int64) {
	track.EventDurationMs = now - track.StartTimeMs

	dirs, n := classifyDirections(track.TravelCol, track.TravelRow, t.cfg.MinimumTravelThreshold)
	for i := 0; i < n; i++ {
		t.movementCounters[dirs[i]]++
		t.movementChanged = true
		if t.onTrackEnd != nil {
			t.onTrackEnd.TrackEnded(*track, dirs[i])
		}
	}

	track.blob.clear()
}

// classifyDirections implements spec §4.6: horizontal and vertical
// travel are classified independently, so a diagonal termination can
// report both. Neither triggering reports NoDirection once.
func classifyDirections(travelCol, travelRow, threshold float64) (dirs [2]Direction, n int) {
	if math.Abs(travelCol) > threshold {
		if travelCol < 0 {
			dirs[n] = Left
		} else {
			dirs[n] = Right
		}
		n++
	}
	if math.Abs(travelRow) > threshold {
		if travelRow > 0 {
			dirs[n] = Up
		} else {
			dirs[n] = Down
		}
		n++
	}
	if n == 0 {
		dirs[0] = NoDirection
		n = 1
	}
	return dirs, n
}

// compact moves active track slots toward the front, preserving order,
// so that slots [0,k) are active and [k,B) are empty.
func (t *Tracker) compact() {
	write := 0
	for read := 0; read < MaxBlobs; read++ {
		if !t.tracks[read].IsActive() {
			continue
		}
		if write != read {
			t.tracks[write].copyFrom(t.tracks[read])
			t.tracks[read] = TrackedBlob{}
		}
		write++
	}
}

// promote allocates a fresh track for every unassigned active blob,
// using free slots in order and silently dropping any blob that
// arrives once all B slots are occupied (spec §7 saturation policy).
func (t *Tracker) promote(blobs *[MaxBlobs]Blob, numBlobs int, now int64) {
	slot := 0
	for i := 0; i < numBlobs; i++ {
		if blobs[i].isAssigned() || !blobs[i].isActive() {
			continue
		}
		for slot < MaxBlobs && t.tracks[slot].IsActive() {
			slot++
		}
		if slot >= MaxBlobs {
			return
		}

		t.nextTrackID++
		t.tracks[slot].set(blobs[i], t.nextTrackID, now)
		if t.onTrackStart != nil {
			t.onTrackStart.TrackStarted(t.tracks[slot])
		}
		slot++
	}
}

// updateBackground folds the frame into the rolling background unless
// the scene has been persistently active for no more than
// unchanged_frame_delay frames, preventing a long-static warm object
// from never being reabsorbed (spec §4.5).
func (t *Tracker) updateBackground(numBlobs int, frame Frame) {
	if numBlobs == 0 {
		t.numUnchangedFrames = 0
		t.background.AddRolling(frame)
		return
	}
	t.numUnchangedFrames++
	if t.numUnchangedFrames > t.cfg.UnchangedFrameDelay {
		t.background.AddRolling(frame)
	}
}

// ReadMovementCounters copies the five direction counters into out and
// clears the movement-changed flag, matching the source's
// read-and-clear accessor contract.
func (t *Tracker) ReadMovementCounters(out *[numDirections]int64) {
	*out = t.movementCounters
	t.movementChanged = false
}

// HasNewMovements is a read-only predicate; unlike ReadMovementCounters
// it does not clear the flag.
func (t *Tracker) HasNewMovements() bool {
	return t.movementChanged
}

// ResetMovements zeroes the movement counters and clears the changed
// flag.
func (t *Tracker) ResetMovements() {
	t.movementCounters = [numDirections]int64{}
	t.movementChanged = false
}

// ResetBackground re-arms the background builder; the host may call
// this between Ingest calls but never from within an observer
// callback.
func (t *Tracker) ResetBackground() {
	t.background.Reset()
}

// IsBackgroundReady reports whether the background model has finished
// its initial build.
func (t *Tracker) IsBackgroundReady() bool {
	return t.background.IsReady()
}

// NumLastBlobs reports how many blobs survived pruning on the most
// recent Ingest call.
func (t *Tracker) NumLastBlobs() int {
	return t.numLastBlobs
}

// BackgroundMean returns the current per-pixel background mean.
func (t *Tracker) BackgroundMean() Frame {
	return t.background.Mean()
}

// BackgroundStdDev returns the current per-pixel background scale
// estimate.
func (t *Tracker) BackgroundStdDev() Frame {
	return t.background.StdDev()
}

// AverageAmbientTemperature returns the mean of the background frame.
func (t *Tracker) AverageAmbientTemperature() float64 {
	return t.background.AverageTemperature()
}
