// This file is part of Raster8.
//
// Raster8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Raster8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Raster8.  If not, see <https://www.gnu.org/licenses/>.

// Package clocks defines the crystal derived clock rates of the machines
// emulated by raster8. Values are the processor clock rate in Hz. The video
// chip is clocked at a multiple of these rates but the timing engine counts
// processor cycles only.
package clocks

// VIC-II machines.
const (
	C64_PAL   = 985248
	C64_NTSC  = 1022727
	C64_PAL_N = 1023440

	// the 6567R56A shares the crystal of the later NTSC revision
	C64_NTSC_OLD = C64_NTSC
)

// TED machines. The TED runs the processor at double speed outside of the
// displayed area of the screen. the rates here are the single speed rates.
const (
	TED_PAL  = 886723
	TED_NTSC = 894886
)

// FrameRate returns the number of frames per second for a machine running
// at clock Hz with the specified number of cycles per frame.
func FrameRate(clock int, cyclesPerFrame int) float64 {
	if cyclesPerFrame <= 0 {
		return 0
	}
	return float64(clock) / float64(cyclesPerFrame)
}
