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
	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
)

// Sentinel errors.
const (
	BadROM = "machine: ROM image is %d bytes. expected %d bytes for %s"
)

// Memory is the memory of the machine as seen by the video chip. Implements
// the vic.Memory interface.
type Memory struct {
	model Model

	RAM   []uint8
	ROM   []uint8
	Color [0x400]uint8
}

func newMemory(model Model) *Memory {
	return &Memory{
		model: model,
		RAM:   make([]uint8, model.RAMSize()),
		ROM:   make([]uint8, model.ROMSize()),
	}
}

// Read implements the vic.Memory interface.
func (mem *Memory) Read(a banks.Address) uint8 {
	switch a.Source {
	case banks.CharROM:
		return mem.ROM[int(a.Offset)%len(mem.ROM)]
	case banks.ColorRAM:
		// the upper nibble of colour RAM is not connected
		return mem.Color[a.Offset&0x3ff] | 0xf0
	}
	return mem.RAM[int(a.Offset)%len(mem.RAM)]
}

// CharROMOverlay implements the vic.Memory interface.
func (mem *Memory) CharROMOverlay(addr uint16) bool {
	return mem.model.Overlay().Match(addr)
}

// Poke a value into RAM.
func (mem *Memory) Poke(addr uint16, v uint8) {
	mem.RAM[int(addr)%len(mem.RAM)] = v
}

// PokeColor writes a value to colour RAM. The TED does not read colour RAM.
func (mem *Memory) PokeColor(addr uint16, v uint8) {
	mem.Color[addr&0x3ff] = v & 0x0f
}

// LoadROM replaces the ROM image. The image must be the size of the model's
// ROM.
func (mem *Memory) LoadROM(data []byte) error {
	if len(data) != len(mem.ROM) {
		return curated.Errorf(BadROM, len(data), len(mem.ROM), mem.model)
	}
	copy(mem.ROM, data)
	return nil
}
