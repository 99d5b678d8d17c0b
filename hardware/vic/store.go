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
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/modes"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// Store a value in a register. The raster catches up with the processor
// before the value is stored.
func (c *Chip) Store(reg registers.Register, v uint8) {
	c.CatchUp()

	reg &= registers.NumRegisters - 1
	switch c.profile.Variant {
	case timing.VICII:
		c.storeVICII(reg, v)
	case timing.TED:
		c.storeTED(reg, v)
	}
}

func (c *Chip) storeVICII(reg registers.Register, v uint8) {
	switch {
	case reg == registers.VICControlY:
		c.regs[reg] = v
		c.enableBadLines()
		c.lateFetch()
		c.updateMode()
		c.setRasterIRQ(c.compareLine(), c.cpu.Clock())

	case reg == registers.VICRaster:
		c.regs[reg] = v
		c.setRasterIRQ(c.compareLine(), c.cpu.Clock())

	case reg == registers.VICLightPenX || reg == registers.VICLightPenY:
		// read only

	case reg == registers.VICControlX:
		c.regs[reg] = v
		c.updateMode()
		c.queue(changes.XScroll, int(v&registers.XScroll))
		c.queue(changes.CSEL, int(v&registers.CSEL)>>3)

	case reg == registers.VICMemoryPointers:
		c.regs[reg] = v
		c.updateBases()

	case reg == registers.VICIRQFlags:
		c.acknowledge(v)

	case reg == registers.VICIRQEnable:
		c.regs[reg] = v
		c.updateIRQ()

	case reg == registers.VICSpriteSprite || reg == registers.VICSpriteBackground:
		// read only

	case reg == registers.VICBorder:
		c.regs[reg] = v
		c.queue(changes.Border, int(v&0x0f))

	case reg >= registers.VICBackground0 && reg <= registers.VICBackground3:
		c.regs[reg] = v
		c.queue(changes.Background0+changes.Target(reg-registers.VICBackground0), int(v&0x0f))
		if reg == registers.VICBackground0 {
			c.queueIdleBackground()
		}

	case reg > registers.VICSprite7Color:
		// unused

	default:
		// sprite registers are latched when the line is drawn
		c.regs[reg] = v
	}
}

func (c *Chip) storeTED(reg registers.Register, v uint8) {
	switch {
	case reg < registers.TEDControl1:
		// timers are not part of the video engine
		c.regs[reg] = v

	case reg == registers.TEDControl1:
		c.regs[reg] = v
		c.enableBadLines()
		c.lateFetch()
		c.updateMode()

	case reg == registers.TEDControl2:
		ntsc := c.regs[reg]&registers.TEDNTSC != v&registers.TEDNTSC
		c.regs[reg] = v
		c.updateMode()
		c.queue(changes.XScroll, int(v&registers.XScroll))
		c.queue(changes.CSEL, int(v&registers.CSEL)>>3)
		if ntsc {
			std := timing.PAL
			if v&registers.TEDNTSC == registers.TEDNTSC {
				std = timing.NTSC
			}
			if err := c.SetStandard(std); err != nil {
				c.log("%v", err)
			}
		}

	case reg == registers.TEDIRQFlags:
		c.acknowledge(v)

	case reg == registers.TEDIRQEnable:
		c.regs[reg] = v
		c.setRasterIRQ(c.compareLine(), c.cpu.Clock())
		c.updateIRQ()

	case reg == registers.TEDRasterCompare:
		c.regs[reg] = v
		c.setRasterIRQ(c.compareLine(), c.cpu.Clock())

	case reg >= registers.TEDBitmapControl && reg <= registers.TEDMatrixBase:
		c.regs[reg] = v
		c.updateBases()

	case reg >= registers.TEDBackground0 && reg <= registers.TEDBackground3:
		c.regs[reg] = v
		c.queue(changes.Background0+changes.Target(reg-registers.TEDBackground0), int(v&0x7f))
		if reg == registers.TEDBackground0 {
			c.queueIdleBackground()
		}

	case reg == registers.TEDBorder:
		c.regs[reg] = v
		c.queue(changes.Border, int(v&0x7f))

	case reg > registers.TEDVerticalSubPos:
		// unused

	default:
		// cursor position and the raster position registers. the raster
		// position is not changed by a write
		c.regs[reg] = v
	}
}

// column returns the queue and column for a change made at the current
// processor clock.
func (c *Chip) column() (*changes.Queue, int) {
	delta := int(int64(c.cpu.Clock()) - int64(c.lineStartClk))
	col, next := c.profile.Column(delta)
	if next {
		return c.nextLine, 0
	}
	return c.thisLine, col
}

// queue a value change at the current column.
func (c *Chip) queue(target changes.Target, v int) {
	q, col := c.column()
	q.Value(col, target, v)
}

// queueAddress queues an address change at the current column.
func (c *Chip) queueAddress(target changes.Target, a banks.Address) {
	q, col := c.column()
	q.Address(col, target, a)
}

func (c *Chip) background0() uint8 {
	if c.profile.Variant == timing.TED {
		return c.regs[registers.TEDBackground0] & 0x7f
	}
	return c.regs[registers.VICBackground0] & 0x0f
}

func (c *Chip) border() uint8 {
	if c.profile.Variant == timing.TED {
		return c.regs[registers.TEDBorder] & 0x7f
	}
	return c.regs[registers.VICBorder] & 0x0f
}

// idleBackground is the background colour drawn in idle state.
func (c *Chip) idleBackground() uint8 {
	if c.mode.Background() == modes.BackgroundBlack {
		return 0
	}
	return c.background0()
}

func (c *Chip) queueIdleBackground() {
	c.queue(changes.IdleBackground, int(c.idleBackground()))
}

func (c *Chip) queueIdleData() {
	c.queue(changes.IdleData, int(c.idleData(c.mode)))
}

// controlX returns the register that holds the MCM, CSEL and XSCROLL bits.
func (c *Chip) controlX() uint8 {
	if c.profile.Variant == timing.TED {
		return c.regs[registers.TEDControl2]
	}
	return c.regs[registers.VICControlX]
}

func (c *Chip) decodeMode() modes.Mode {
	y := c.controlY()
	return modes.Decode(y&registers.ECM == registers.ECM,
		y&registers.BMM == registers.BMM,
		c.controlX()&registers.MCM == registers.MCM)
}

// updateMode queues the mode, idle background and idle data changes if the
// mode bits have changed.
func (c *Chip) updateMode() {
	m := c.decodeMode()
	if m == c.mode {
		return
	}
	c.mode = m
	c.queue(changes.Mode, int(m))
	c.queueIdleBackground()
	c.queueIdleData()
}

// resolveBases sets the addresses of the video memory areas from the
// register file without queueing any changes.
func (c *Chip) resolveBases() {
	switch c.profile.Variant {
	case timing.VICII:
		c.bases = banks.ResolveVICII(c.regs[registers.VICMemoryPointers], c.bankBase, c.mem.CharROMOverlay)
	case timing.TED:
		c.bases = banks.ResolveTED(c.regs[registers.TEDBitmapControl], c.regs[registers.TEDCharBase], c.regs[registers.TEDMatrixBase])
	}
}

// updateBases resolves the addresses of the video memory areas and queues a
// change for every address that differs.
func (c *Chip) updateBases() {
	old := c.bases
	c.resolveBases()

	if old.Screen != c.bases.Screen {
		c.queueAddress(changes.Screen, c.bases.Screen)
	}
	if old.Char != c.bases.Char {
		c.queueAddress(changes.Char, c.bases.Char)
	}
	if old.Bitmap[0] != c.bases.Bitmap[0] {
		c.queueAddress(changes.BitmapLow, c.bases.Bitmap[0])
	}
	if old.Bitmap[1] != c.bases.Bitmap[1] {
		c.queueAddress(changes.BitmapHigh, c.bases.Bitmap[1])
	}
	if old.Color != c.bases.Color {
		c.queueAddress(changes.Color, c.bases.Color)
	}
}

// deriveDrawState sets the render state of the current line from the
// register file.
func (c *Chip) deriveDrawState() {
	s := &c.drawState
	s.Mode = c.mode
	s.Border = c.border()
	for i := range s.Background {
		if c.profile.Variant == timing.TED {
			s.Background[i] = c.regs[registers.TEDBackground0+registers.Register(i)] & 0x7f
		} else {
			s.Background[i] = c.regs[registers.VICBackground0+registers.Register(i)] & 0x0f
		}
	}
	s.IdleBackground = c.idleBackground()
	s.Screen = c.bases.Screen
	s.Char = c.bases.Char
	s.Bitmap = c.bases.Bitmap
	s.Color = c.bases.Color
	s.IdleData = c.idleData(c.mode)
	s.XScroll = c.controlX() & registers.XScroll
	s.CSEL = c.controlX()&registers.CSEL == registers.CSEL
}
