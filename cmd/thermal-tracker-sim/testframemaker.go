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

import "github.com/TheCacophonyProject/thermal-tracker/tracker"

// frameMaker produces a stream of synthetic frames: a constant
// background temperature plus an optional moving hot block, for
// exercising the tracker without a real sensor.
type frameMaker struct {
	BackgroundTemp float64
	BlockTemp      float64
	BlockSize      int

	row, col int
}

func newFrameMaker() *frameMaker {
	return &frameMaker{
		BackgroundTemp: 22.0,
		BlockTemp:      30.0,
		BlockSize:      2,
	}
}

// backgroundOnly returns count identical frames with no hot block, for
// warming up the background model.
func (fm *frameMaker) backgroundOnly(count int) []tracker.Frame {
	frames := make([]tracker.Frame, count)
	for i := range frames {
		frames[i] = fm.background()
	}
	return frames
}

// movingBlock returns one frame per step, with a BlockSize×BlockSize
// hot block advancing by (dRow, dCol) pixels from (startRow, startCol)
// each step.
func (fm *frameMaker) movingBlock(startRow, startCol, dRow, dCol, steps int) []tracker.Frame {
	frames := make([]tracker.Frame, steps)
	row, col := startRow, startCol
	for i := 0; i < steps; i++ {
		frames[i] = fm.frameWithBlock(row, col)
		row += dRow
		col += dCol
	}
	return frames
}

func (fm *frameMaker) background() tracker.Frame {
	var frame tracker.Frame
	for r := 0; r < tracker.Height; r++ {
		for c := 0; c < tracker.Width; c++ {
			frame[r][c] = fm.BackgroundTemp
		}
	}
	return frame
}

func (fm *frameMaker) frameWithBlock(row, col int) tracker.Frame {
	frame := fm.background()
	for r := row; r < row+fm.BlockSize && r < tracker.Height && r >= 0; r++ {
		for c := col; c < col+fm.BlockSize && c < tracker.Width && c >= 0; c++ {
			frame[r][c] = fm.BlockTemp
		}
	}
	return frame
}
