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
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// compareLine returns the raster compare line from the register file.
func (c *Chip) compareLine() int {
	if c.profile.Variant == timing.TED {
		return int(c.regs[registers.TEDRasterCompare]) |
			int(c.regs[registers.TEDIRQEnable]&registers.TEDRasterCompareMSB)<<8
	}
	return int(c.regs[registers.VICRaster]) |
		int(c.regs[registers.VICControlY]&registers.RST8)<<1
}

// rasterFlag is the bit of the IRQ flags register for the raster compare.
func (c *Chip) rasterFlag() uint8 {
	if c.profile.Variant == timing.TED {
		return registers.TEDIRQRaster
	}
	return registers.VICIRQRaster
}

// irqEnable returns the interrupt enable bits.
func (c *Chip) irqEnable() uint8 {
	if c.profile.Variant == timing.TED {
		return c.regs[registers.TEDIRQEnable] & 0x5e
	}
	return c.regs[registers.VICIRQEnable] & 0x0f
}

// setRasterIRQ arms the raster compare alarm for the next time the raster
// reaches the line, as seen from cycle now. A compare line beyond the end of
// the frame never matches and the alarm is unset.
func (c *Chip) setRasterIRQ(line int, now alarm.Cycle) {
	if line < 0 || line >= c.profile.LinesPerFrame {
		c.rasterIRQClk = alarm.Never
		c.sched.Unset(alarm.RasterIRQ)
		return
	}

	clk := int64(c.lineStartClk) +
		int64(c.profile.RasterIRQDelay-c.profile.InterruptDelay) +
		int64(c.profile.CyclesPerLine)*int64(line-c.line)

	// line zero matches one cycle later than other lines
	if line == 0 {
		clk++
	}

	// the current line has already been compared. in the final cycle of a
	// line the raster has not yet reached c.line
	compared := line <= c.line
	if now < c.lineStartClk {
		compared = line < c.line
	}
	if compared {
		clk += int64(c.profile.CyclesPerFrame)
	}

	c.rasterIRQClk = alarm.Cycle(clk)
	c.sched.Set(alarm.RasterIRQ, c.rasterIRQClk)
}

func (c *Chip) rasterIRQAlarm(_ alarm.Cycle) {
	c.irqStatus |= c.rasterFlag()
	c.updateIRQ()

	c.rasterIRQClk += alarm.Cycle(c.profile.CyclesPerFrame)
	c.sched.Set(alarm.RasterIRQ, c.rasterIRQClk)
}

// updateIRQ drives the processor's interrupt line according to the flags
// and enable registers.
func (c *Chip) updateIRQ() {
	active := c.irqStatus&c.irqEnable() != 0
	if active {
		c.irqStatus |= registers.IRQ
	} else {
		c.irqStatus &^= registers.IRQ
	}
	c.cpu.SetIRQ(IRQSource, active)
}

// acknowledge the interrupt flags set in the value. writing a one to a flag
// clears it.
func (c *Chip) acknowledge(v uint8) {
	c.irqStatus &^= v &^ registers.IRQ
	c.updateIRQ()
}

// collisions detected by the renderer. An interrupt flag is only set when a
// collision register changes from zero to non-zero.
func (c *Chip) collisions(col Collisions) {
	if c.profile.Variant != timing.VICII {
		return
	}

	var raise bool
	if col.SpriteSprite != 0 {
		if c.spriteSprite == 0 {
			c.irqStatus |= registers.VICIRQSpriteSprite
			raise = true
		}
		c.spriteSprite |= col.SpriteSprite
	}
	if col.SpriteBackground != 0 {
		if c.spriteBackground == 0 {
			c.irqStatus |= registers.VICIRQSpriteBackground
			raise = true
		}
		c.spriteBackground |= col.SpriteBackground
	}

	if raise {
		c.updateIRQ()
	}
}

// TriggerLightPen latches the position of the raster into the light pen
// registers of the VIC-II. The light pen can be triggered once per frame.
func (c *Chip) TriggerLightPen() {
	if c.profile.Variant != timing.VICII {
		return
	}

	c.CatchUp()
	if c.lightPenLatched {
		return
	}
	c.lightPenLatched = true

	// the X register has a resolution of two pixels
	line, start := c.position(c.cpu.Clock())
	delta := int(int64(c.cpu.Clock()) - int64(start))
	c.regs[registers.VICLightPenX] = uint8(max(delta, 0) * 4)
	c.regs[registers.VICLightPenY] = uint8(line)

	c.irqStatus |= registers.VICIRQLightPen
	c.updateIRQ()
}
