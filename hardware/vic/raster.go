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
	"github.com/jetsetilly/raster8/hardware/vic/modes"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// number of cycles between BA going low and the first stolen cycle. write
// cycles of the processor can continue during this time.
const busHandover = 3

// controlY returns the register that holds the DEN, RSEL and YSCROLL bits.
func (c *Chip) controlY() uint8 {
	if c.profile.Variant == timing.TED {
		return c.regs[registers.TEDControl1]
	}
	return c.regs[registers.VICControlY]
}

// badLineCondition is true if the current line is a bad line according to
// the current register values.
func (c *Chip) badLineCondition() bool {
	return c.allowBadLines &&
		c.profile.InDMAWindow(c.line) &&
		uint8(c.line)&registers.YScroll == c.controlY()&registers.YScroll
}

// enableBadLines sets the DMA allowed flag if the raster is on the first DMA
// line and the display is enabled.
func (c *Chip) enableBadLines() {
	if c.line == c.profile.FirstDMALine && c.controlY()&registers.DEN == registers.DEN {
		c.allowBadLines = true
	}
}

// fetchMatrix reads the video matrix and colour data for the columns in the
// range [from, to).
func (c *Chip) fetchMatrix(from int, to int) {
	for i := from; i < to; i++ {
		offset := (c.vcBase + i) & 0x3ff
		c.matrix[i] = c.mem.Read(c.bases.Screen.Add(offset))
		c.color[i] = c.mem.Read(c.bases.Color.Add(offset))
	}
}

// writeCycles returns the number of write cycles of the most recent
// instruction that happened at or after the cycle. The processor can
// continue to write for the three cycles of the bus handover so these cycles
// are not stolen.
func (c *Chip) writeCycles(clk alarm.Cycle) int {
	w := c.cpu.LastWrites()
	if w.Count == 0 {
		return 0
	}

	now := int64(c.cpu.Clock())
	first := now - int64(w.FirstAgo)
	last := now - int64(w.LastAgo)
	at := int64(clk)

	if first <= at && at <= last {
		return min(int(last-at+1), busHandover)
	}
	return 0
}

func (c *Chip) fetchAlarm(_ alarm.Cycle) {
	c.enableBadLines()

	if c.badLineCondition() {
		c.fetchMatrix(0, c.profile.TextColumns)
		c.cpu.StealCycles(c.fetchClk, c.profile.TextColumns+busHandover-c.writeCycles(c.fetchClk))
		c.badLine = true
		c.idle = false
		c.ycounter = 0
		c.fetch = fetchDone
	} else {
		c.fetch = fetchChecked
	}

	if c.line < c.profile.LastDMALine {
		c.fetchClk += alarm.Cycle(c.profile.CyclesPerLine)
	} else {
		c.fetchClk = c.nextWindow()
	}
	c.sched.Set(alarm.Fetch, c.fetchClk)
}

// lateFetch is called after a register write that might have made the
// current line a bad line after the fetch alarm has fired.
func (c *Chip) lateFetch() {
	if c.fetch == fetchDone || !c.badLineCondition() {
		return
	}

	now := c.cpu.Clock()
	delta := int(int64(now) - int64(c.lineStartClk))
	if delta < c.profile.FetchCycle {
		// the fetch alarm has not fired yet for this line
		return
	}

	// columns that have passed read the bus as $ff
	pos := min(max(delta-(c.profile.FetchCycle+busHandover), 0), c.profile.TextColumns)
	for i := range pos {
		c.matrix[i] = 0xff
		c.color[i] = 0xff
	}
	c.fetchMatrix(pos, c.profile.TextColumns)

	steal := c.profile.TextColumns + busHandover - (delta - c.profile.FetchCycle)
	if steal > 0 {
		c.cpu.StealCycles(now, steal)
	}

	c.badLine = true
	c.idle = false
	c.fetch = fetchDone
}

func (c *Chip) drawAlarm(_ alarm.Cycle) {
	if c.profile.Displayed(c.line) && !c.skipFrame {
		c.handOff()
	}

	// the state at the start of the next line
	c.thisLine.Apply(&c.drawState)
	c.thisLine.Reset()

	// row counter and idle state
	vc := c.vcBase
	if !c.idle {
		vc = (c.vcBase + c.profile.TextColumns) & 0x3ff
	}
	if c.ycounter == 7 {
		c.idle = true
		c.vcBase = vc
	}
	if !c.idle || c.badLine {
		c.ycounter = (c.ycounter + 1) & 0x07
		c.idle = false
	}

	// advance raster
	c.prevLine = c.line
	c.prevLineStartClk = c.lineStartClk
	c.line++
	c.lineStartClk += alarm.Cycle(c.profile.CyclesPerLine)
	c.badLine = false
	c.fetch = fetchPending

	if c.line >= c.profile.LinesPerFrame {
		c.newFrame()
	}

	c.updateVerticalBorder()

	c.drawState.IdleData = c.idleData(c.drawState.Mode)
	c.nextLine.MoveTo(c.thisLine)

	c.drawClk = c.lineStartClk + alarm.Cycle(c.profile.DrawCycle)
	c.sched.Set(alarm.Draw, c.drawClk)
}

// newFrame is called by the draw alarm when the raster returns to line zero.
func (c *Chip) newFrame() {
	c.line = 0
	c.frame++
	c.cursorPhase = (c.cursorPhase + 1) & 0x1f
	c.vcBase = 0
	c.allowBadLines = false
	c.lightPenLatched = false

	skip := c.ins.Prefs.FrameSkip.Get().(int)
	c.skipFrame = skip > 0 && c.frame%(skip+1) != 0

	if c.pendingProfile != nil {
		c.log("profile change from %s to %s", c.profile.Standard, c.pendingProfile.Standard)
		c.profile = c.pendingProfile
		c.pendingProfile = nil
		c.renderer.Resize(c.raster, c.profile)

		// line zero begins at the same cycle for the new profile. the draw
		// alarm is set by the caller
		c.fetchClk = c.nextWindow()
		if c.profile.InDMAWindow(0) {
			c.fetchClk = c.lineStartClk + alarm.Cycle(c.profile.FetchCycle)
		}
		c.sched.Set(alarm.Fetch, c.fetchClk)
		c.setRasterIRQ(c.compareLine(), c.drawClk)
	}

	c.renderer.NewFrame(c.raster, c.frame, c.skipFrame)
}

// updateVerticalBorder sets the vertical border flip-flop for the current
// line. the flip-flop is set at the line after the last line of the display
// window and cleared at the first line of the window if the display is
// enabled.
func (c *Chip) updateVerticalBorder() {
	first, last := c.profile.DisplayWindow(c.controlY()&registers.RSEL == registers.RSEL)
	if c.line == last+1 {
		c.verticalBorder = true
	} else if c.line == first && c.controlY()&registers.DEN == registers.DEN {
		c.verticalBorder = false
	}
}

// handOff gives the completed line to the renderer.
func (c *Chip) handOff() {
	l := &c.out
	l.Raster = c.line
	l.Frame = c.frame
	l.Profile = c.profile
	l.Start = c.drawState
	l.Changes = c.thisLine.Changes()
	l.Matrix = c.matrix
	l.Color = c.color
	l.VC = c.vcBase
	l.RC = c.ycounter
	l.Idle = c.idle
	l.BadLine = c.badLine
	l.Border = c.verticalBorder

	switch c.profile.Variant {
	case timing.VICII:
		c.readSprites(l)
	case timing.TED:
		l.Cursor = (int(c.regs[registers.TEDCursorHi])<<8 | int(c.regs[registers.TEDCursorLo])) & 0x3ff
		l.Flash = c.cursorPhase&0x10 == 0
		l.Reverse = c.regs[registers.TEDControl2]&registers.TEDReverseOff == 0
	}

	col := c.renderer.DrawLine(c.raster, l)
	c.collisions(col)
}

// resolve a VIC-II address in the current bank through the character ROM
// overlay.
func (c *Chip) resolve(addr uint16) banks.Address {
	if c.mem.CharROMOverlay(addr) {
		return banks.Address{Source: banks.CharROM, Offset: addr & 0x0fff}
	}
	return banks.Address{Source: banks.RAM, Offset: addr}
}

// readSprites reads the data of every sprite that covers the current line.
// Sprite registers are latched at the end of the line.
func (c *Chip) readSprites(l *Line) {
	enabled := c.regs[registers.VICSpriteEnable]
	yexp := c.regs[registers.VICSpriteYExpand]
	xexp := c.regs[registers.VICSpriteXExpand]
	mc := c.regs[registers.VICSpriteMulticolor]
	pri := c.regs[registers.VICSpritePriority]
	msb := c.regs[registers.VICSpriteXMSB]

	l.SpriteMulticolor[0] = c.regs[registers.VICSpriteMulticolor0] & 0x0f
	l.SpriteMulticolor[1] = c.regs[registers.VICSpriteMulticolor1] & 0x0f

	for i := range l.Sprites {
		s := &l.Sprites[i]
		bit := uint8(1) << i
		*s = Sprite{}

		if enabled&bit == 0 {
			continue
		}

		// sprite Y is compared with the lower eight bits of the raster
		row := int(uint8(c.line) - c.regs[registers.VICSprite0X+registers.Register(i*2+1)])
		if yexp&bit == bit {
			if row >= 42 {
				continue
			}
			row /= 2
		} else if row >= 21 {
			continue
		}

		s.Enabled = true
		s.Row = row
		s.X = int(c.regs[registers.VICSprite0X+registers.Register(i*2)])
		if msb&bit == bit {
			s.X |= 0x100
		}
		s.Color = c.regs[registers.VICSprite0Color+registers.Register(i)] & 0x0f
		s.Multicolor = mc&bit == bit
		s.XExpand = xexp&bit == bit
		s.Behind = pri&bit == bit

		ptr := c.mem.Read(c.bases.Screen.Add(0x3f8 + i))
		addr := c.bankBase + uint16(ptr)*64 + uint16(row*3)
		for j := range s.Data {
			s.Data[j] = c.mem.Read(c.resolve(addr + uint16(j)))
		}
	}
}

// idleData returns the byte read by the graphics fetch in idle state for the
// mode. The TED has no idle fetch.
func (c *Chip) idleData(m modes.Mode) uint8 {
	addr, ok := m.IdleSource(c.profile.Variant == timing.VICII)
	if !ok {
		return 0
	}
	return c.mem.Read(c.resolve(c.bankBase + addr))
}
