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
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// Load the value of a register. The raster catches up with the processor
// before the value is read. Reading a collision register clears it.
func (c *Chip) Load(reg registers.Register) uint8 {
	c.CatchUp()

	reg &= registers.NumRegisters - 1
	switch c.profile.Variant {
	case timing.TED:
		return c.loadTED(reg)
	}
	return c.loadVICII(reg)
}

func (c *Chip) loadVICII(reg registers.Register) uint8 {
	mask := registers.VICReadMask(reg)

	switch reg {
	case registers.VICControlY:
		return c.regs[reg]&^registers.RST8 | uint8(c.RasterLine()>>8)<<7
	case registers.VICRaster:
		return uint8(c.RasterLine())
	case registers.VICIRQFlags:
		return c.irqStatus | mask
	case registers.VICSpriteSprite:
		v := c.spriteSprite
		c.spriteSprite = 0
		return v
	case registers.VICSpriteBackground:
		v := c.spriteBackground
		c.spriteBackground = 0
		return v
	}

	return c.regs[reg] | mask
}

func (c *Chip) loadTED(reg registers.Register) uint8 {
	mask := registers.TEDReadMask(reg)

	switch reg {
	case registers.TEDIRQFlags:
		return c.irqStatus | mask
	case registers.TEDRasterHi:
		return mask | uint8(c.RasterLine()>>8)&0x01
	case registers.TEDRasterLo:
		return uint8(c.RasterLine())
	case registers.TEDHorizontalPos:
		_, start := c.position(c.cpu.Clock())
		delta := int(int64(c.cpu.Clock()) - int64(start))
		return uint8(max(delta, 0) * 4)
	case registers.TEDVerticalSubPos:
		return 0x80 | uint8(c.cursorPhase&0x0f)<<3 | uint8(c.ycounter)
	}

	return c.regs[reg] | mask
}
