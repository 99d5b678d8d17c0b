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

package machine_test

import (
	"testing"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/machine"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/snapshot"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/test"
)

func newMachine(t *testing.T, model machine.Model) *machine.Machine {
	t.Helper()
	ins, err := instance.NewInstance(instance.Comparison, nil)
	test.DemandSuccess(t, err)
	m, err := machine.NewMachine(model, ins)
	test.DemandSuccess(t, err)
	return m
}

// display enables the display with a vertical scroll of three. the first
// bad line is $33
func display(m *machine.Machine) {
	v := uint8(registers.DEN | registers.RSEL | 3)
	if m.Model.Variant() == timing.TED {
		m.Store(registers.TEDControl1, v, 4)
	} else {
		m.Store(registers.VICControlY, v, 4)
	}
}

// seek steps the machine to the start of the line.
func seek(t *testing.T, m *machine.Machine, line int) {
	t.Helper()
	for m.VIC.Line() != line {
		m.StepLine()
	}
}

func TestModels(t *testing.T) {
	for _, m := range machine.Models {
		p, err := machine.ParseModel(m.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, m)
	}

	p, err := machine.ParseModel("plus/4")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, machine.Plus4)

	p, err = machine.ParseModel(" ultimax ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, machine.C64Ultimax)

	_, err = machine.ParseModel("VIC20")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, machine.UnknownModel))

	test.ExpectEquality(t, machine.C128.Rasters(), 2)
	test.ExpectEquality(t, machine.C16.Variant(), timing.TED)
	test.ExpectEquality(t, machine.C64Ultimax.Variant(), timing.VICII)
}

func TestMemory(t *testing.T) {
	m := newMachine(t, machine.C16)
	test.ExpectEquality(t, len(m.Mem.RAM), 0x4000)

	m.Mem.Poke(0x4001, 0x07)
	test.ExpectEquality(t, m.Mem.Read(banks.Address{Source: banks.RAM, Offset: 0x8001}), uint8(0x07))

	m.Mem.PokeColor(0x0401, 0x3e)
	test.ExpectEquality(t, m.Mem.Read(banks.Address{Source: banks.ColorRAM, Offset: 0x0001}), uint8(0xfe))

	err := m.Mem.LoadROM(make([]byte, 10))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, machine.BadROM))
	test.ExpectSuccess(t, m.Mem.LoadROM(make([]byte, 0x8000)))

	c := newMachine(t, machine.C64)
	test.ExpectSuccess(t, c.Mem.CharROMOverlay(0x1000))
	test.ExpectSuccess(t, !c.Mem.CharROMOverlay(0x5000))

	u := newMachine(t, machine.C64Ultimax)
	test.ExpectSuccess(t, u.Mem.CharROMOverlay(0x3000))
	test.ExpectSuccess(t, !u.Mem.CharROMOverlay(0x1000))
}

func TestStolenCycles(t *testing.T) {
	m := newMachine(t, machine.C64)
	display(m)
	m.RunFrames(1)

	// 25 bad lines in the frame
	test.ExpectEquality(t, m.CPU.Stats.Stolen, 25*43)
	test.ExpectEquality(t, m.VIC.Frame(), 1)
}

func TestHalted(t *testing.T) {
	m := newMachine(t, machine.C64)
	display(m)
	seek(t, m, 0x33)

	start := m.Clock()
	m.Step(100)
	test.ExpectEquality(t, m.Clock(), start+143)
	test.ExpectEquality(t, m.CPU.Stats.Halted, 43)
	test.ExpectSuccess(t, !m.CPU.Halted())
}

func TestWriteDuringFetch(t *testing.T) {
	m := newMachine(t, machine.C64)
	display(m)
	seek(t, m, 0x33)

	// the store lands on the fetch cycle of the bad line. the write cycle
	// is not stolen
	fetch := alarm.Cycle(0x33*63 + 11)
	m.Step(int(fetch-4) - int(m.Clock()))
	test.DemandEquality(t, m.Clock(), fetch-4)
	m.Store(registers.VICBorder, 0x01, 4)
	test.ExpectEquality(t, m.CPU.Stats.Stolen, 42)

	// a read-modify-write instruction writes twice. the second write is one
	// cycle after the fetch cycle
	seek(t, m, 0x3b)
	fetch = alarm.Cycle(0x3b*63 + 11)
	m.Step(int(fetch+1-6) - int(m.Clock()))
	test.DemandEquality(t, m.Clock(), fetch+1-6)
	m.Modify(registers.VICBorder, func(v uint8) uint8 { return v + 1 }, 6)
	test.ExpectEquality(t, m.CPU.Stats.Stolen, 42+41)
	test.ExpectEquality(t, m.Load(registers.VICBorder)&0x0f, uint8(0x02))
}

func TestRasterIRQ(t *testing.T) {
	m := newMachine(t, machine.C64)
	display(m)
	m.Store(registers.VICRaster, 100, 4)
	m.Store(registers.VICIRQEnable, registers.VICIRQRaster, 4)

	m.RunFrames(1)
	test.ExpectEquality(t, m.CPU.Stats.IRQs, 1)
	test.ExpectSuccess(t, m.CPU.IRQ())

	// acknowledge
	m.Store(registers.VICIRQFlags, registers.VICIRQRaster, 4)
	test.ExpectSuccess(t, !m.CPU.IRQ())

	m.RunFrames(1)
	test.ExpectEquality(t, m.CPU.Stats.IRQs, 2)
}

func TestPlus4(t *testing.T) {
	m := newMachine(t, machine.Plus4)
	test.ExpectEquality(t, m.VIC.Label(), "TED")
	display(m)
	m.RunFrames(1)
	test.ExpectInequality(t, m.CPU.Stats.Stolen, 0)
}

func TestProfilePreference(t *testing.T) {
	ins, err := instance.NewInstance(instance.Comparison, nil)
	test.DemandSuccess(t, err)
	m, err := machine.NewMachine(machine.C64, ins)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.VIC.Profile().Standard, timing.PAL)

	test.ExpectSuccess(t, ins.Prefs.Profile.Set("NTSC"))

	// the change happens at the frame boundary
	test.ExpectEquality(t, m.VIC.Profile().Standard, timing.PAL)
	m.RunFrames(1)
	test.ExpectEquality(t, m.VIC.Profile().Standard, timing.NTSC)
	test.ExpectEquality(t, m.VIC.Profile().CyclesPerLine, 65)

	test.ExpectFailure(t, ins.Prefs.Profile.Set("bogus"))

	// a profile from the preferences is used when the machine is created
	n, err := machine.NewMachine(machine.Plus4, ins)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, n == nil)

	test.DemandSuccess(t, ins.Prefs.Profile.Set("NTSC"))
	n, err = machine.NewMachine(machine.Plus4, ins)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n.VIC.Profile().Standard, timing.NTSC)
}

func TestSnapshot(t *testing.T) {
	m := newMachine(t, machine.C64)
	for i := range 0x0400 {
		m.Mem.Poke(uint16(0x0400+i), uint8(i))
		m.Mem.PokeColor(uint16(i), uint8(i>>2))
	}
	display(m)
	m.Store(registers.VICRaster, 0x80, 4)
	m.Store(registers.VICIRQEnable, registers.VICIRQRaster, 4)
	m.Step(5000)

	data, err := m.SaveSnapshot()
	test.DemandSuccess(t, err)
	clk := m.Clock()

	n := newMachine(t, machine.C64)
	test.DemandSuccess(t, n.LoadSnapshot(data))
	test.ExpectEquality(t, n.Clock(), clk)
	test.ExpectEquality(t, n.VIC.Line(), m.VIC.Line())

	m.RunFrames(2)
	n.RunFrames(2)

	a, err := m.SaveSnapshot()
	test.DemandSuccess(t, err)
	b, err := n.SaveSnapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(a), string(b))

	// the most recent frame is complete in both renderers
	prof := m.VIC.Profile()
	w, h := prof.VisibleColumns*8, prof.LastDisplayedLine-prof.FirstDisplayedLine+1
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 3 {
			if m.Render.Index(m.Raster, x, y) != n.Render.Index(n.Raster, x, y) {
				t.Fatalf("pixel %d,%d differs after snapshot", x, y)
			}
		}
	}
}

func TestSnapshotIncomplete(t *testing.T) {
	m := newMachine(t, machine.C64)
	display(m)
	m.Step(1000)
	data, err := m.SaveSnapshot()
	test.DemandSuccess(t, err)

	// pretend the chip module was written by a newer version
	c, err := snapshot.Unmarshal(data)
	test.DemandSuccess(t, err)
	vm, err := c.Find(m.VIC.Label())
	test.DemandSuccess(t, err)
	vm.Minor = 99
	data, err = c.Marshal()
	test.DemandSuccess(t, err)

	n := newMachine(t, machine.C64)
	err = n.LoadSnapshot(data)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, machine.SnapshotIncomplete))

	// the machine module was restored
	test.ExpectEquality(t, n.Clock(), m.Clock())

	p := newMachine(t, machine.Plus4)
	err = p.LoadSnapshot(data)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, machine.WrongModel))

	test.ExpectFailure(t, n.LoadSnapshot([]byte("not a snapshot")))
}
