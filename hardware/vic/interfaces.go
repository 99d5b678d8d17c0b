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

package vic

import (
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// IRQSource is the identifier used by the chip when calling CPU.SetIRQ().
const IRQSource = 1

// WriteWindow describes the write cycles of the most recent processor
// instruction. FirstAgo and LastAgo are the number of cycles between the
// first and last write and the current clock. Count is zero if the
// instruction made no writes.
type WriteWindow struct {
	FirstAgo int
	LastAgo  int
	Count    int
}

// CPU is the processor sharing the bus with the video chip.
type CPU interface {
	// the current processor clock
	Clock() alarm.Cycle

	// halt the processor for n cycles beginning at the start cycle. the
	// start cycle may be in the past
	StealCycles(start alarm.Cycle, n int)

	// drive the interrupt line of a source
	SetIRQ(id int, active bool)

	// the write cycles of the most recent instruction
	LastWrites() WriteWindow
}

// Memory is the video chip's view of memory.
type Memory interface {
	Read(addr banks.Address) uint8

	// returns true if the character ROM replaces RAM at the address
	CharROMOverlay(addr uint16) bool
}

// Renderer composes the lines handed to it by the chip.
type Renderer interface {
	// register a new raster for a chip. panics if the machine model does
	// not support another raster
	RegisterRaster(label string, mem Memory) int

	// the geometry of the raster has changed
	Resize(raster int, p *timing.Profile)

	// a new frame has begun. if skip is true then no lines will be handed
	// to the renderer for the frame
	NewFrame(raster int, frame int, skip bool)

	// compose a single line. the line must not be retained after the
	// function returns
	DrawLine(raster int, l *Line) Collisions
}

// Sprite is the state of a single VIC-II sprite for a line.
type Sprite struct {
	Enabled    bool
	X          int
	Row        int
	Color      uint8
	Multicolor bool
	XExpand    bool

	// sprite is drawn behind foreground graphics
	Behind bool

	Data [3]uint8
}

// Collisions detected by the renderer during a line. Each field is a bit
// mask of the sprites involved.
type Collisions struct {
	SpriteSprite     uint8
	SpriteBackground uint8
}

// Line is handed to the renderer when a line has been completed.
type Line struct {
	Raster  int
	Frame   int
	Profile *timing.Profile

	// render state at the start of the line and the changes made during
	// the line in column order
	Start   changes.State
	Changes []changes.Change

	// video matrix and colour data for the current text row
	Matrix [40]uint8
	Color  [40]uint8

	// video counter at the start of the line and the row counter
	VC int
	RC int

	Idle    bool
	BadLine bool

	// line is in the vertical border
	Border bool

	// VIC-II only
	Sprites          [8]Sprite
	SpriteMulticolor [2]uint8

	// TED only. Cursor is the position of the hardware cursor in the video
	// matrix. Flash is true when flashing characters and the cursor are
	// visible. Reverse is true when bit 7 of the screen code selects
	// reverse video
	Cursor  int
	Flash   bool
	Reverse bool
}
