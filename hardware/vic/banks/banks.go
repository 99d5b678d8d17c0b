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

// Package banks resolves the register values that select video memory into
// the addresses read by the video chip's fetches. An Address is a pair of
// memory source and offset so that the address survives a snapshot and does
// not depend on where the host keeps its memory.
package banks

import "fmt"

// Source is the memory read by a video fetch.
type Source int

// List of valid Source values.
const (
	RAM Source = iota
	CharROM
	ColorRAM
)

func (s Source) String() string {
	switch s {
	case RAM:
		return "RAM"
	case CharROM:
		return "ROM"
	case ColorRAM:
		return "COL"
	}
	return "???"
}

// Address is an offset into a memory source.
type Address struct {
	Source Source
	Offset uint16
}

func (a Address) String() string {
	return fmt.Sprintf("%s:%04x", a.Source, a.Offset)
}

// Add returns the address n bytes after a, wrapping inside the source.
func (a Address) Add(n int) Address {
	return Address{Source: a.Source, Offset: a.Offset + uint16(n)}
}

// Bases are the resolved addresses of the video memory areas.
type Bases struct {
	// video matrix
	Screen Address

	// character generator
	Char Address

	// the bitmap is resolved in two halves of 4K because the character ROM
	// overlay of some models can apply to one half only
	Bitmap [2]Address

	// colour data. colour RAM for the VIC-II and the attribute area of the
	// video matrix for the TED
	Color Address
}

func (b Bases) String() string {
	return fmt.Sprintf("screen=%s char=%s bitmap=%s/%s color=%s",
		b.Screen, b.Char, b.Bitmap[0], b.Bitmap[1], b.Color)
}

// Overlay is the character ROM overlay of a machine model. The character ROM
// replaces RAM for video fetches when an address masked with Mask equals
// Value. An overlay with a zero Mask never matches.
type Overlay struct {
	Mask  uint16
	Value uint16
}

// Match returns true if the overlay applies to the address.
func (o Overlay) Match(addr uint16) bool {
	return o.Mask != 0 && addr&o.Mask == o.Value
}

// Overlays for the supported machine models.
var (
	// character ROM visible at $1000 and $9000 in the video chip's view
	OverlayC64 = Overlay{Mask: 0x7000, Value: 0x1000}

	// cartridge ROM replaces the top 4K of every bank in Ultimax mode
	OverlayUltimax = Overlay{Mask: 0x3000, Value: 0x3000}

	// no character ROM in the video chip's view
	OverlayNone = Overlay{}
)

// ResolveVICII resolves register $18 of the VIC-II for the bank beginning at
// bankBase. The overlay function decides whether an address is in the
// character ROM.
func ResolveVICII(d018 uint8, bankBase uint16, overlay func(addr uint16) bool) Bases {
	resolve := func(addr uint16) Address {
		if overlay != nil && overlay(addr) {
			return Address{Source: CharROM, Offset: addr & 0x0fff}
		}
		return Address{Source: RAM, Offset: addr}
	}

	screen := bankBase + uint16(d018&0xf0)<<6
	char := bankBase + uint16(d018&0x0e)<<10
	bitmap := bankBase + uint16(d018&0x08)<<10

	return Bases{
		Screen: resolve(screen),
		Char:   resolve(char),
		Bitmap: [2]Address{
			resolve(bitmap),
			resolve(bitmap + 0x1000),
		},
		Color: Address{Source: ColorRAM, Offset: 0},
	}
}

// TEDROMSelect is the bit of TED register $12 that selects ROM for character
// and bitmap fetches.
const TEDROMSelect = 0x04

// ResolveTED resolves registers $12, $13 and $14 of the TED. The attribute
// area is the first 1K of the video matrix and the screen codes the second.
func ResolveTED(r12 uint8, r13 uint8, r14 uint8) Bases {
	resolve := func(addr uint16) Address {
		if r12&TEDROMSelect == TEDROMSelect {
			return Address{Source: CharROM, Offset: addr & 0x7fff}
		}
		return Address{Source: RAM, Offset: addr}
	}

	bitmap := uint16(r12&0x38) << 10
	char := uint16(r13&0xfc) << 8
	matrix := uint16(r14&0xf8) << 8

	return Bases{
		Screen: Address{Source: RAM, Offset: matrix + 0x400},
		Char:   resolve(char),
		Bitmap: [2]Address{
			resolve(bitmap),
			resolve(bitmap + 0x1000),
		},
		Color: Address{Source: RAM, Offset: matrix},
	}
}
