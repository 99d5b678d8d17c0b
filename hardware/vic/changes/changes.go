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

// Package changes records register writes that affect the appearance of a
// raster line. A write made while a line is being drawn takes effect from
// the column being drawn at the time of the write. The renderer starts from
// the State latched at the beginning of the line and applies the Changes in
// column order.
package changes

import (
	"fmt"

	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/modes"
)

// State is the render state of a line at a given column.
type State struct {
	Mode modes.Mode

	Border     uint8
	Background [4]uint8

	// background colour used in idle state
	IdleBackground uint8

	Screen banks.Address
	Char   banks.Address
	Bitmap [2]banks.Address
	Color  banks.Address

	// the byte read by the graphics fetch in idle state
	IdleData uint8

	XScroll uint8

	// 40 columns (true) or 38 columns
	CSEL bool
}

// Target is the part of the State altered by a Change.
type Target int

// List of valid Target values.
const (
	Mode Target = iota
	Border
	Background0
	Background1
	Background2
	Background3
	IdleBackground
	Screen
	Char
	BitmapLow
	BitmapHigh
	Color
	IdleData
	XScroll
	CSEL
)

func (t Target) String() string {
	switch t {
	case Mode:
		return "mode"
	case Border:
		return "border"
	case Background0, Background1, Background2, Background3:
		return fmt.Sprintf("background%d", int(t-Background0))
	case IdleBackground:
		return "idle background"
	case Screen:
		return "screen"
	case Char:
		return "char"
	case BitmapLow:
		return "bitmap low"
	case BitmapHigh:
		return "bitmap high"
	case Color:
		return "color"
	case IdleData:
		return "idle data"
	case XScroll:
		return "xscroll"
	case CSEL:
		return "csel"
	}
	return "unknown target"
}

// Change is a single alteration of the State. Address targets use the Addr
// field and all other targets use the Value field.
type Change struct {
	Column int
	Target Target
	Value  int
	Addr   banks.Address
}

func (c Change) String() string {
	switch c.Target {
	case Screen, Char, BitmapLow, BitmapHigh, Color:
		return fmt.Sprintf("%02d: %s=%s", c.Column, c.Target, c.Addr)
	}
	return fmt.Sprintf("%02d: %s=%d", c.Column, c.Target, c.Value)
}

// Apply the change to the State.
func (c Change) Apply(s *State) {
	switch c.Target {
	case Mode:
		s.Mode = modes.Mode(c.Value)
	case Border:
		s.Border = uint8(c.Value)
	case Background0, Background1, Background2, Background3:
		s.Background[c.Target-Background0] = uint8(c.Value)
	case IdleBackground:
		s.IdleBackground = uint8(c.Value)
	case Screen:
		s.Screen = c.Addr
	case Char:
		s.Char = c.Addr
	case BitmapLow:
		s.Bitmap[0] = c.Addr
	case BitmapHigh:
		s.Bitmap[1] = c.Addr
	case Color:
		s.Color = c.Addr
	case IdleData:
		s.IdleData = uint8(c.Value)
	case XScroll:
		s.XScroll = uint8(c.Value)
	case CSEL:
		s.CSEL = c.Value != 0
	default:
		panic(fmt.Sprintf("changes: unknown target (%d)", int(c.Target)))
	}
}

// Queue is an ordered sequence of changes for a single line. Columns never
// decrease from one change to the next.
type Queue struct {
	changes []Change
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{
		changes: make([]Change, 0, 64),
	}
}

// Push a change to the end of the queue. Panics if the change is for an
// earlier column than the last change in the queue.
func (q *Queue) Push(c Change) {
	if n := len(q.changes); n > 0 && q.changes[n-1].Column > c.Column {
		panic(fmt.Sprintf("changes: column %d pushed after column %d", c.Column, q.changes[n-1].Column))
	}
	q.changes = append(q.changes, c)
}

// Value pushes a change with a value.
func (q *Queue) Value(column int, target Target, value int) {
	q.Push(Change{Column: column, Target: target, Value: value})
}

// Address pushes a change with an address.
func (q *Queue) Address(column int, target Target, addr banks.Address) {
	q.Push(Change{Column: column, Target: target, Addr: addr})
}

// Len returns the number of changes in the queue.
func (q *Queue) Len() int {
	return len(q.changes)
}

// Changes returns the changes in the queue. The returned slice must not be
// retained after the next call to Reset().
func (q *Queue) Changes() []Change {
	return q.changes
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.changes = q.changes[:0]
}

// Apply every change in the queue to the State in order.
func (q *Queue) Apply(s *State) {
	for _, c := range q.changes {
		c.Apply(s)
	}
}

// MoveTo appends every change in the queue to the destination queue at
// column zero and empties the queue. Used to carry changes made after the
// last visible column into the next line.
func (q *Queue) MoveTo(dst *Queue) {
	for _, c := range q.changes {
		c.Column = 0
		dst.Push(c)
	}
	q.Reset()
}
