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

// Package registers names the registers of the video chip variants and the
// bits within them that the timing engine acts on.
package registers

import "fmt"

// Register is an offset into the register file of the video chip.
type Register int

// NumRegisters is the size of the register file. Both variants decode six
// address lines.
const NumRegisters = 0x40

// VIC-II registers.
const (
	VICSprite0X          Register = 0x00
	VICSpriteXMSB        Register = 0x10
	VICControlY          Register = 0x11
	VICRaster            Register = 0x12
	VICLightPenX         Register = 0x13
	VICLightPenY         Register = 0x14
	VICSpriteEnable      Register = 0x15
	VICControlX          Register = 0x16
	VICSpriteYExpand     Register = 0x17
	VICMemoryPointers    Register = 0x18
	VICIRQFlags          Register = 0x19
	VICIRQEnable         Register = 0x1a
	VICSpritePriority    Register = 0x1b
	VICSpriteMulticolor  Register = 0x1c
	VICSpriteXExpand     Register = 0x1d
	VICSpriteSprite      Register = 0x1e
	VICSpriteBackground  Register = 0x1f
	VICBorder            Register = 0x20
	VICBackground0       Register = 0x21
	VICBackground3       Register = 0x24
	VICSpriteMulticolor0 Register = 0x25
	VICSpriteMulticolor1 Register = 0x26
	VICSprite0Color      Register = 0x27
	VICSprite7Color      Register = 0x2e
)

// Bits of VICControlY. The TED control register shares the layout of the
// lower seven bits.
const (
	RST8    = 0x80
	ECM     = 0x40
	BMM     = 0x20
	DEN     = 0x10
	RSEL    = 0x08
	YScroll = 0x07
)

// Bits of VICControlX and TEDControl2.
const (
	MCM     = 0x10
	CSEL    = 0x08
	XScroll = 0x07
)

// Bits of VICIRQFlags and VICIRQEnable.
const (
	VICIRQRaster           = 0x01
	VICIRQSpriteBackground = 0x02
	VICIRQSpriteSprite     = 0x04
	VICIRQLightPen         = 0x08
)

// IRQ is the bit of the IRQ flags register that is set when any enabled
// interrupt is active.
const IRQ = 0x80

// TED registers. Registers below $06 are the TED's timers and are not part
// of the video engine.
const (
	TEDControl1       Register = 0x06
	TEDControl2       Register = 0x07
	TEDIRQFlags       Register = 0x09
	TEDIRQEnable      Register = 0x0a
	TEDRasterCompare  Register = 0x0b
	TEDCursorHi       Register = 0x0c
	TEDCursorLo       Register = 0x0d
	TEDBitmapControl  Register = 0x12
	TEDCharBase       Register = 0x13
	TEDMatrixBase     Register = 0x14
	TEDBackground0    Register = 0x15
	TEDBackground3    Register = 0x18
	TEDBorder         Register = 0x19
	TEDRasterHi       Register = 0x1c
	TEDRasterLo       Register = 0x1d
	TEDHorizontalPos  Register = 0x1e
	TEDVerticalSubPos Register = 0x1f
)

// Bits of TEDControl2.
const (
	TEDReverseOff = 0x80
	TEDNTSC       = 0x40
	TEDFreeze     = 0x20
)

// Bits of TEDIRQFlags and TEDIRQEnable. Bit 0 of TEDIRQEnable is bit 8 of the
// raster compare line.
const (
	TEDIRQRaster        = 0x02
	TEDRasterCompareMSB = 0x01
)

// VICReadMask returns the bits of the register that always read as one.
func VICReadMask(reg Register) uint8 {
	switch {
	case reg == VICControlX:
		return 0xc0
	case reg == VICMemoryPointers:
		return 0x01
	case reg == VICIRQFlags:
		return 0x70
	case reg == VICIRQEnable:
		return 0xf0
	case reg >= VICBorder && reg <= VICSprite7Color:
		return 0xf0
	case reg > VICSprite7Color:
		return 0xff
	}
	return 0x00
}

// TEDReadMask returns the bits of the register that always read as one.
func TEDReadMask(reg Register) uint8 {
	switch {
	case reg == TEDIRQFlags:
		return 0x25
	case reg == TEDIRQEnable:
		return 0xa0
	case reg >= TEDBackground0 && reg <= TEDBorder:
		return 0x80
	case reg == TEDRasterHi:
		return 0xfe
	case reg > TEDVerticalSubPos:
		return 0xff
	}
	return 0x00
}

// VICName returns the conventional name of the VIC-II register.
func VICName(reg Register) string {
	switch {
	case reg < VICSpriteXMSB:
		if reg&0x01 == 0x01 {
			return fmt.Sprintf("M%dY", reg>>1)
		}
		return fmt.Sprintf("M%dX", reg>>1)
	case reg == VICSpriteXMSB:
		return "MSIGX"
	case reg == VICControlY:
		return "CR1"
	case reg == VICRaster:
		return "RASTER"
	case reg == VICLightPenX:
		return "LPX"
	case reg == VICLightPenY:
		return "LPY"
	case reg == VICSpriteEnable:
		return "MXE"
	case reg == VICControlX:
		return "CR2"
	case reg == VICSpriteYExpand:
		return "MXYE"
	case reg == VICMemoryPointers:
		return "MEMPTR"
	case reg == VICIRQFlags:
		return "IRR"
	case reg == VICIRQEnable:
		return "IMR"
	case reg == VICSpritePriority:
		return "MXDP"
	case reg == VICSpriteMulticolor:
		return "MXMC"
	case reg == VICSpriteXExpand:
		return "MXXE"
	case reg == VICSpriteSprite:
		return "MXM"
	case reg == VICSpriteBackground:
		return "MXD"
	case reg == VICBorder:
		return "EC"
	case reg >= VICBackground0 && reg <= VICBackground3:
		return fmt.Sprintf("B%dC", reg-VICBackground0)
	case reg == VICSpriteMulticolor0:
		return "MM0"
	case reg == VICSpriteMulticolor1:
		return "MM1"
	case reg >= VICSprite0Color && reg <= VICSprite7Color:
		return fmt.Sprintf("M%dC", reg-VICSprite0Color)
	}
	return fmt.Sprintf("unused %02x", int(reg))
}
