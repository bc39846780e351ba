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

// TrackStartObserver is notified, synchronously and by value, when a
// new track is promoted from an unassigned blob.
type TrackStartObserver interface {
	TrackStarted(track TrackedBlob)
}

// TrackEndObserver is notified, synchronously and by value, when a
// track dies and its net travel has been classified.
type TrackEndObserver interface {
	TrackEnded(track TrackedBlob, direction Direction)
}

// TrackStartObserverFunc adapts a plain function to a TrackStartObserver.
type TrackStartObserverFunc func(track TrackedBlob)

func (f TrackStartObserverFunc) TrackStarted(track TrackedBlob) { f(track) }

// TrackEndObserverFunc adapts a plain function to a TrackEndObserver.
type TrackEndObserverFunc func(track TrackedBlob, direction Direction)

func (f TrackEndObserverFunc) TrackEnded(track TrackedBlob, direction Direction) { f(track, direction) }
