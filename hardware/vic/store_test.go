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

package vic_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/modes"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/test"
)

func TestStoreColumn(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)

	// cycle 20 is column 8
	h.step(h.at(100, 20))
	h.chip.Store(registers.VICBorder, 5)
	h.step(h.at(101, 0))
	test.ExpectEquality(t, h.rend.last.Raster, 100)
	test.ExpectEquality(t, h.rend.last.Start.Border, uint8(0))
	test.ExpectEquality(t, h.rend.lastChanges, "[08: border=5]")

	// the change is part of the state at the start of the next line
	h.step(h.at(102, 0))
	test.ExpectEquality(t, h.rend.last.Raster, 101)
	test.ExpectEquality(t, h.rend.last.Start.Border, uint8(5))
	test.ExpectEquality(t, h.rend.lastChanges, "[]")

	// writes before the first visible cycle are at column zero
	h.step(h.at(110, 3))
	h.chip.Store(registers.VICBackground0+1, 0x1c)
	h.step(h.at(111, 0))
	test.ExpectEquality(t, h.rend.lastChanges, "[00: background1=12]")
}

func TestStoreAfterVisibleColumns(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)

	// column 49 is after the last visible column
	h.step(h.at(100, 61))
	h.chip.Store(registers.VICBorder, 7)
	h.step(h.at(101, 0))
	test.ExpectEquality(t, h.rend.last.Raster, 100)
	test.ExpectEquality(t, h.rend.lastChanges, "[]")

	h.step(h.at(102, 0))
	test.ExpectEquality(t, h.rend.last.Raster, 101)
	test.ExpectEquality(t, h.rend.last.Start.Border, uint8(0))
	test.ExpectEquality(t, h.rend.lastChanges, "[00: border=7]")

	// the last visible column
	h.step(h.at(110, 59))
	h.chip.Store(registers.VICBorder, 8)
	h.step(h.at(111, 0))
	test.ExpectEquality(t, h.rend.lastChanges, "[47: border=8]")
}

func TestStoreModeChange(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)
	h.mem.ram[0x3fff] = 0x55
	h.mem.ram[0x39ff] = 0xaa

	h.step(h.at(100, 30))
	h.chip.Store(registers.VICControlY, registers.BMM|registers.RSEL|3)
	test.ExpectEquality(t, h.chip.Mode(), modes.HiresBitmap)

	h.step(h.at(100, 40))
	h.chip.Store(registers.VICControlY, registers.ECM|registers.RSEL|3)
	test.ExpectEquality(t, h.chip.Mode(), modes.ExtendedText)

	// no change to the mode bits
	h.step(h.at(100, 45))
	h.chip.Store(registers.VICControlY, registers.ECM|registers.RSEL|4)

	h.step(h.at(101, 0))
	expected := fmt.Sprintf("%v", []changes.Change{
		{Column: 18, Target: changes.Mode, Value: int(modes.HiresBitmap)},
		{Column: 18, Target: changes.IdleBackground, Value: 0},
		{Column: 18, Target: changes.IdleData, Value: 0x55},
		{Column: 28, Target: changes.Mode, Value: int(modes.ExtendedText)},
		{Column: 28, Target: changes.IdleBackground, Value: 0},
		{Column: 28, Target: changes.IdleData, Value: 0xaa},
	})
	test.ExpectEquality(t, h.rend.lastChanges, expected)

	h.step(h.at(102, 0))
	test.ExpectEquality(t, h.rend.last.Start.Mode, modes.ExtendedText)
	test.ExpectEquality(t, h.rend.last.Start.IdleData, uint8(0xaa))
}

func TestStoreControlX(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)

	h.step(h.at(100, 12))
	h.chip.Store(registers.VICControlX, registers.MCM|registers.CSEL|5)
	test.ExpectEquality(t, h.chip.Mode(), modes.MulticolorText)
	test.ExpectEquality(t, h.chip.Load(registers.VICControlX), uint8(0xdd))

	h.step(h.at(102, 0))
	test.ExpectEquality(t, h.rend.last.Start.XScroll, uint8(5))
	test.ExpectEquality(t, h.rend.last.Start.CSEL, true)
	test.ExpectEquality(t, h.rend.last.Start.Mode, modes.MulticolorText)
}

func TestStoreMemoryPointers(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)

	h.step(h.at(100, 22))
	h.chip.Store(registers.VICMemoryPointers, 0x14)
	test.ExpectEquality(t, h.chip.Load(registers.VICMemoryPointers), uint8(0x15))

	b := h.chip.Bases()
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x0400})
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.CharROM, Offset: 0x0000})
	test.ExpectEquality(t, b.Color, banks.Address{Source: banks.ColorRAM, Offset: 0x0000})

	h.step(h.at(101, 0))
	expected := fmt.Sprintf("%v", []changes.Change{
		{Column: 10, Target: changes.Screen, Addr: banks.Address{Source: banks.RAM, Offset: 0x0400}},
		{Column: 10, Target: changes.Char, Addr: banks.Address{Source: banks.CharROM, Offset: 0x0000}},
	})
	test.ExpectEquality(t, h.rend.lastChanges, expected)

	// the character ROM is not visible in banks one and three
	h.chip.SetBank(1)
	test.ExpectEquality(t, h.chip.Bank(), 1)
	b = h.chip.Bases()
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x4400})
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.RAM, Offset: 0x5000})

	h.chip.SetBank(2)
	b = h.chip.Bases()
	test.ExpectEquality(t, b.Char, banks.Address{Source: banks.CharROM, Offset: 0x0000})
}

func TestLoadMasks(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)

	h.chip.Store(registers.VICBorder, 0x05)
	test.ExpectEquality(t, h.chip.Load(registers.VICBorder), uint8(0xf5))
	test.ExpectEquality(t, h.chip.Load(registers.VICIRQEnable), uint8(0xf0))
	test.ExpectEquality(t, h.chip.Load(registers.VICIRQFlags), uint8(0x70))
	test.ExpectEquality(t, h.chip.Load(0x2f), uint8(0xff))
	test.ExpectEquality(t, h.chip.Load(0x3f), uint8(0xff))

	// registers repeat every 64 bytes
	test.ExpectEquality(t, h.chip.Load(0x60), uint8(0xf5))

	// sprite registers are stored without masking
	h.chip.Store(registers.VICSprite0X+3, 0x99)
	test.ExpectEquality(t, h.chip.Load(registers.VICSprite0X+3), uint8(0x99))

	// light pen registers are read only
	h.chip.Store(registers.VICLightPenX, 0x12)
	test.ExpectEquality(t, h.chip.Load(registers.VICLightPenX), uint8(0x00))
}

func TestTEDStore(t *testing.T) {
	h := newHarness(t, timing.TED, timing.PAL)

	h.chip.Store(registers.TEDBorder, 0x71)
	test.ExpectEquality(t, h.chip.Load(registers.TEDBorder), uint8(0xf1))
	h.chip.Store(registers.TEDBackground0, 0x32)
	test.ExpectEquality(t, h.chip.Load(registers.TEDBackground0), uint8(0xb2))

	h.chip.Store(registers.TEDMatrixBase, 0x08)
	b := h.chip.Bases()
	test.ExpectEquality(t, b.Color, banks.Address{Source: banks.RAM, Offset: 0x0800})
	test.ExpectEquality(t, b.Screen, banks.Address{Source: banks.RAM, Offset: 0x0c00})

	// colour values have seven bits
	h.step(h.at(100, 0))
	test.ExpectEquality(t, h.rend.last.Start.Border, uint8(0x71))
	test.ExpectEquality(t, h.rend.last.Start.Background[0], uint8(0x32))
}

type write struct {
	clk alarm.Cycle
	reg registers.Register
	v   uint8
}

// run the writes in a new harness. if batch is true the chip only catches up
// when a register is written.
func runWrites(t *testing.T, writes []write, end alarm.Cycle, batch bool) *harness {
	t.Helper()

	h := newHarness(t, timing.VICII, timing.PAL)
	for i := range h.mem.ram {
		h.mem.ram[i] = uint8(i * 7)
	}
	for i := range h.mem.color {
		h.mem.color[i] = uint8(i)
	}

	for _, w := range writes {
		if batch {
			h.jump(w.clk)
		} else {
			h.step(w.clk)
		}
		h.chip.Store(w.reg, w.v)
	}

	if batch {
		h.jump(end)
	} else {
		h.step(end)
	}

	return h
}

func TestBatchEquivalence(t *testing.T) {
	p, err := timing.NewProfile(timing.VICII, timing.PAL)
	test.DemandSuccess(t, err)
	at := func(line int, cycle int) alarm.Cycle {
		return alarm.Cycle(line*p.CyclesPerLine + cycle)
	}

	writes := []write{
		{at(10, 0), registers.VICControlY, registers.DEN | registers.RSEL | 3},
		{at(60, 20), registers.VICBorder, 2},
		{at(61, 30), registers.VICBackground0, 6},
		{at(75, 20), registers.VICControlY, registers.DEN | registers.RSEL | 4},
		{at(100, 61), registers.VICMemoryPointers, 0x14},
		{at(120, 15), registers.VICControlX, registers.MCM | 0x03},
		{at(200, 40), registers.VICControlY, registers.DEN | registers.BMM | registers.RSEL | 3},
		{at(320, 5), registers.VICRaster, 0x40},
		{at(400, 50), registers.VICBorder, 9},
	}
	end := at(312*2+5, 0)

	step := runWrites(t, writes, end, false)
	batch := runWrites(t, writes, end, true)

	test.DemandEquality(t, len(batch.rend.lines), len(step.rend.lines))
	for i := range step.rend.lines {
		if !test.ExpectEquality(t, batch.rend.lines[i], step.rend.lines[i]) {
			break
		}
	}
	test.ExpectEquality(t, batch.cpu.irq, step.cpu.irq)
	test.ExpectEquality(t, len(batch.cpu.stolen), len(step.cpu.stolen))

	a, err := step.chip.WriteSnapshot()
	test.DemandSuccess(t, err)
	b, err := batch.chip.WriteSnapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b.Data), string(a.Data))
}
