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

package machine

import (
	"strings"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// Sentinel errors.
const (
	UnknownModel = "machine: unknown model (%s)"
)

// Model is a machine model.
type Model int

// List of valid Model values.
const (
	C64 Model = iota
	C64Ultimax
	C128
	Plus4
	C16
)

// Models lists every supported model.
var Models = []Model{C64, C64Ultimax, C128, Plus4, C16}

func (m Model) String() string {
	switch m {
	case C64:
		return "C64"
	case C64Ultimax:
		return "C64-ULTIMAX"
	case C128:
		return "C128"
	case Plus4:
		return "PLUS4"
	case C16:
		return "C16"
	}
	return "unknown model"
}

// ParseModel returns the model with the name. Names are not case sensitive.
func ParseModel(s string) (Model, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, m := range Models {
		if m.String() == s {
			return m, nil
		}
	}
	switch s {
	case "ULTIMAX":
		return C64Ultimax, nil
	case "PLUS/4", "+4":
		return Plus4, nil
	}
	return C64, curated.Errorf(UnknownModel, s)
}

// Variant returns the video chip of the model.
func (m Model) Variant() timing.Variant {
	switch m {
	case Plus4, C16:
		return timing.TED
	}
	return timing.VICII
}

// Rasters returns the number of rasters supported by the model. The C128
// has a second raster for the 80 column display.
func (m Model) Rasters() int {
	if m == C128 {
		return 2
	}
	return 1
}

// Overlay returns the character ROM overlay of the model.
func (m Model) Overlay() banks.Overlay {
	switch m {
	case C64, C128:
		return banks.OverlayC64
	case C64Ultimax:
		return banks.OverlayUltimax
	}
	return banks.OverlayNone
}

// RAMSize returns the number of bytes of RAM. Addresses beyond the size of
// RAM are mirrored.
func (m Model) RAMSize() int {
	if m == C16 {
		return 0x4000
	}
	return 0x10000
}

// ROMSize returns the size of the ROM image seen by the video chip. The
// character ROM of the VIC-II machines or the system ROM of the TED
// machines.
func (m Model) ROMSize() int {
	if m.Variant() == timing.TED {
		return 0x8000
	}
	return 0x1000
}
