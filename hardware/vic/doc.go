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

// Package vic is the cycle accurate timing engine of the raster scanning video
// chips of the Commodore 8-bit machines. Two variants are supported: the
// VIC-II of the C64 and C128 and the TED of the Plus/4 and C16.
//
// The engine does not produce pixels. It reproduces the memory access pattern
// of the chip, the cycles stolen from the processor by bad lines, the side
// effects of register writes that depend on the position of the raster and
// the generation of interrupts. Each completed raster line is handed to a
// Renderer along with the register changes made while the line was drawn.
//
// The engine is a discrete event simulation. Three alarms, held in an
// alarm.Scheduler, trigger on absolute processor cycles:
//
//	fetch:  the bad line check and video matrix fetch of a line in the DMA
//	        window. rearmed every line of the window and then for the first
//	        DMA line of the next frame.
//
//	draw:   the end of the line. the line is handed to the renderer and the
//	        raster advances. rearmed every line.
//
//	raster: the raster compare interrupt. rearmed every frame.
//
// The processor drives the engine. CatchUp() fires every alarm that is due
// at the current processor clock. Store() and Load() catch up before
// accessing a register so that a register access sees the raster in the
// correct position.
//
// A change that affects the appearance of the line is not applied to the
// renderer's state immediately. It is queued at the column being drawn at
// the time of the write. Changes made after the last visible column are
// queued for column zero of the next line.
//
// The engine is single threaded. With the assertions build tag, driving a
// chip from more than one goroutine causes a panic.
package vic
