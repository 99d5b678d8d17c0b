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

// Package modes decodes the three mode bits of the video chip into one of
// eight display modes and answers the questions the raster state machine and
// renderer ask of a mode.
package modes

// Mode is the display mode selected by the extended colour (ECM), bitmap
// (BMM) and multicolour (MCM) bits.
type Mode int

// List of valid Mode values. The value of each mode is the bit pattern
// ECM<<2 | BMM<<1 | MCM.
const (
	NormalText Mode = iota
	MulticolorText
	HiresBitmap
	MulticolorBitmap
	ExtendedText
	IllegalText
	IllegalBitmap1
	IllegalBitmap2
)

// Decode the mode bits.
func Decode(ecm, bmm, mcm bool) Mode {
	var m Mode
	if ecm {
		m |= 0x04
	}
	if bmm {
		m |= 0x02
	}
	if mcm {
		m |= 0x01
	}
	return m
}

func (m Mode) String() string {
	switch m {
	case NormalText:
		return "normal text"
	case MulticolorText:
		return "multicolour text"
	case HiresBitmap:
		return "hires bitmap"
	case MulticolorBitmap:
		return "multicolour bitmap"
	case ExtendedText:
		return "extended text"
	case IllegalText:
		return "illegal text"
	case IllegalBitmap1:
		return "illegal bitmap 1"
	case IllegalBitmap2:
		return "illegal bitmap 2"
	}
	return "unknown mode"
}

// Bitmap returns true if graphics data is fetched from the bitmap rather
// than the character generator.
func (m Mode) Bitmap() bool {
	return m&0x02 == 0x02
}

// Multicolor returns true if the multicolour bit is set.
func (m Mode) Multicolor() bool {
	return m&0x01 == 0x01
}

// Extended returns true if the extended colour bit is set.
func (m Mode) Extended() bool {
	return m&0x04 == 0x04
}

// Illegal returns true for mode combinations that output black pixels only.
func (m Mode) Illegal() bool {
	return m >= IllegalText
}

// Background is the source of the background colour for a mode.
type Background int

// List of valid Background values.
const (
	// background colour register 0
	BackgroundRegister Background = iota

	// lower nibble of the video matrix byte for the cell
	BackgroundMatrix

	// always black
	BackgroundBlack
)

// Background returns the policy for the background colour of the mode.
func (m Mode) Background() Background {
	switch {
	case m.Illegal():
		return BackgroundBlack
	case m == HiresBitmap:
		return BackgroundMatrix
	}
	return BackgroundRegister
}

// Idle fetch addresses of the VIC-II. The extended colour bit forces address
// lines 9 and 10 low.
const (
	IdleAddress         = 0x3fff
	IdleAddressExtended = 0x39ff
)

// IdleSource returns the address read by the graphics fetch while the chip
// is in idle state. The address is relative to the start of the video bank.
// Chips without an idle fetch (idleFetch false) return ok false.
func (m Mode) IdleSource(idleFetch bool) (addr uint16, ok bool) {
	if !idleFetch {
		return 0, false
	}
	if m.Extended() {
		return IdleAddressExtended, true
	}
	return IdleAddress, true
}
