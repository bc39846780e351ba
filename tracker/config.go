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

import "errors"

// Config holds every tunable of the tracking pipeline. All weights are
// held in a per-tracker value rather than process-wide mutable state,
// so multiple Tracker instances can run with independent policies.
type Config struct {
	RunningAverageSize         int     `yaml:"running-average-size"`
	MinBlobSize                int     `yaml:"min-blob-size"`
	MinimumTravelThreshold     float64 `yaml:"minimum-travel-threshold"`
	MaxDifferenceThreshold     float64 `yaml:"max-difference-threshold"`
	MinimumTemperatureDiff     float64 `yaml:"minimum-temperature-differential"`
	ActivePixelVarianceScalar  float64 `yaml:"active-pixel-variance-scalar"`
	MaxDeadFrames              int     `yaml:"max-dead-frames"`
	AdjacencyFuzz              int     `yaml:"adjacency-fuzz"`
	UnchangedFrameDelay        int     `yaml:"unchanged-frame-delay"`

	PositionPenalty    float64 `yaml:"position-penalty"`
	AreaPenalty        float64 `yaml:"area-penalty"`
	AspectRatioPenalty float64 `yaml:"aspect-ratio-penalty"`
	TemperaturePenalty float64 `yaml:"temperature-penalty"`
	DirectionPenalty   float64 `yaml:"direction-penalty"`
}

// DefaultConfig returns the configuration with the defaults named in
// spec.md §3.
func DefaultConfig() Config {
	return Config{
		RunningAverageSize:        800,
		MinBlobSize:               3,
		MinimumTravelThreshold:    4,
		MaxDifferenceThreshold:    400,
		MinimumTemperatureDiff:    0.5,
		ActivePixelVarianceScalar: 4,
		MaxDeadFrames:             4,
		AdjacencyFuzz:             1,
		UnchangedFrameDelay:       50,

		PositionPenalty:    2,
		AreaPenalty:        5,
		AspectRatioPenalty: 10,
		TemperaturePenalty: 10,
		DirectionPenalty:   50,
	}
}

// DeadFramePenalty is derived, not stored: max_difference_threshold /
// max_dead_frames. When MaxDeadFrames is 0 (tracks die immediately on
// any miss, a legal configuration per spec.md §7), the penalty value is
// irrelevant since there is never a surviving dead frame to penalise,
// so it returns 0 rather than dividing by zero.
func (c Config) DeadFramePenalty() float64 {
	if c.MaxDeadFrames == 0 {
		return 0
	}
	return c.MaxDifferenceThreshold / float64(c.MaxDeadFrames)
}

// Validate reports any configuration values that would make the
// tracker behave nonsensically.
func (c Config) Validate() error {
	if c.RunningAverageSize <= 0 {
		return errors.New("running-average-size must be positive")
	}
	if c.MinBlobSize <= 0 {
		return errors.New("min-blob-size must be positive")
	}
	if c.MaxDeadFrames < 0 {
		return errors.New("max-dead-frames must not be negative")
	}
	if c.AdjacencyFuzz < 0 {
		return errors.New("adjacency-fuzz must not be negative")
	}
	if c.MaxDifferenceThreshold <= 0 {
		return errors.New("max-difference-threshold must be positive")
	}
	return nil
}
