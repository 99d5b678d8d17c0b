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

package banks_test

import (
	"testing"

	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/test"
)

func TestOverlay(t *testing.T) {
	test.ExpectEquality(t, banks.OverlayC64.Match(0x1000), true)
	test.ExpectEquality(t, banks.OverlayC64.Match(0x1fff), true)
	test.ExpectEquality(t, banks.OverlayC64.Match(0x9800), true)
	test.ExpectEquality(t, banks.OverlayC64.Match(0x2000), false)
	test.ExpectEquality(t, banks.OverlayC64.Match(0x5000), false)
	test.ExpectEquality(t, banks.OverlayNone.Match(0x0000), false)
	test.ExpectEquality(t, banks.OverlayNone.Match(0x1000), false)
	test.ExpectEquality(t, banks.OverlayUltimax.Match(0x3000), true)
	test.ExpectEquality(t, banks.OverlayUltimax.Match(0xf800), true)
	test.ExpectEquality(t, banks.OverlayUltimax.Match(0x1000), false)
}

func TestVICIIPowerOn(t *testing.T) {
	// $d018 value of $15 after the KERNAL has initialised the screen
	b := banks.ResolveVICII(0x15, 0x0000, banks.OverlayC64.Match)
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x0400})
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.CharROM, Offset: 0x0000})
	test.ExpectEquality(t, b.Color, banks.Address{Source: banks.ColorRAM, Offset: 0x0000})

	// lower case character set
	b = banks.ResolveVICII(0x17, 0x0000, banks.OverlayC64.Match)
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.CharROM, Offset: 0x0800})

	// same value without an overlay reads RAM
	b = banks.ResolveVICII(0x15, 0x0000, banks.OverlayNone.Match)
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.RAM, Offset: 0x1000})
}

func TestVICIIBanks(t *testing.T) {
	b := banks.ResolveVICII(0xf8, 0xc000, banks.OverlayC64.Match)
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0xfc00})
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.RAM, Offset: 0xe000})
	test.ExpectEquality(t, b.Bitmap[0], banks.Address{Source: banks.RAM, Offset: 0xe000})
	test.ExpectEquality(t, b.Bitmap[1], banks.Address{Source: banks.RAM, Offset: 0xf000})

	// bitmap in the lower half of bank 2 straddles the overlay
	b = banks.ResolveVICII(0x00, 0x8000, banks.OverlayC64.Match)
	test.ExpectEquality(t, b.Bitmap[0], banks.Address{Source: banks.RAM, Offset: 0x8000})
	test.ExpectEquality(t, b.Bitmap[1], banks.Address{Source: banks.CharROM, Offset: 0x0000})
}

func TestTED(t *testing.T) {
	// power on values. matrix at $0c00 and the character set in ROM at $d000
	b := banks.ResolveTED(0xc4, 0xd0, 0x08)
	test.ExpectEquality(t, b.Color, banks.Address{Source: banks.RAM, Offset: 0x0800})
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x0c00})
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.CharROM, Offset: 0x5000})

	// ROM select bit clear
	b = banks.ResolveTED(0x08, 0x20, 0x18)
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.RAM, Offset: 0x2000})
	test.ExpectEquality(t, b.Bitmap[0], banks.Address{Source: banks.RAM, Offset: 0x2000})
	test.ExpectEquality(t, b.Color, banks.Address{Source: banks.RAM, Offset: 0x1800})
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x1c00})
}

func TestAdd(t *testing.T) {
	a := banks.Address{Source: banks.RAM, Offset: 0xfff0}
	test.ExpectEquality(t, a.Add(0x20), banks.Address{Source: banks.RAM, Offset: 0x0010})
}
