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
	"testing"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/snapshot"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/test"
)

// prepare a harness in the middle of a line with changes queued for the
// current and next lines.
func midLine(t *testing.T) *harness {
	t.Helper()

	h := newHarness(t, timing.VICII, timing.PAL)
	for i := range h.mem.ram {
		h.mem.ram[i] = uint8(i * 3)
	}

	h.display(3)
	h.chip.Store(registers.VICIRQEnable, registers.VICIRQRaster)
	h.chip.Store(registers.VICRaster, 0x80)
	h.step(h.at(0x63, 25))
	h.chip.Store(registers.VICBorder, 3)
	h.step(h.at(0x63, 61))
	h.chip.Store(registers.VICBackground0, 4)
	return h
}

func TestSnapshotRoundTrip(t *testing.T) {
	a := midLine(t)
	n := len(a.rend.lines)
	next := a.chip.NextAlarm()

	// no alarm is pending while the snapshot is taken
	a.chip.PrepareForSnapshot()
	test.ExpectEquality(t, a.chip.NextAlarm(), alarm.Never)

	m, err := a.chip.WriteSnapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.chip.NextAlarm(), alarm.Never)

	a.chip.ResumeAfterSnapshot()
	test.ExpectEquality(t, a.chip.NextAlarm(), next)
	test.ExpectEquality(t, m.Name, "VIC-II")
	test.ExpectEquality(t, m.Major, vic.SnapshotMajor)
	test.ExpectEquality(t, m.Minor, vic.SnapshotMinor)

	var c snapshot.Container
	c.Add(m)
	data, err := c.Marshal()
	test.DemandSuccess(t, err)

	d, err := snapshot.Unmarshal(data)
	test.DemandSuccess(t, err)
	m, err = d.Find("VIC-II")
	test.DemandSuccess(t, err)

	b := newHarness(t, timing.VICII, timing.PAL)
	b.mem.ram = a.mem.ram
	b.cpu.clock = a.cpu.clock
	test.DemandSuccess(t, b.chip.ReadSnapshot(m))

	test.ExpectEquality(t, b.chip.Line(), a.chip.Line())
	test.ExpectEquality(t, b.chip.YCounter(), a.chip.YCounter())
	test.ExpectEquality(t, b.chip.Bases(), a.chip.Bases())
	test.ExpectEquality(t, b.chip.NextAlarm(), a.chip.NextAlarm())

	// writing the restored chip produces an identical module
	r, err := b.chip.WriteSnapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(r.Data), string(m.Data))

	// both chips continue identically
	end := a.at(312+20, 0)
	a.step(end)
	b.step(end)

	test.DemandEquality(t, len(b.rend.lines), len(a.rend.lines)-n)
	for i := range b.rend.lines {
		if !test.ExpectEquality(t, b.rend.lines[i], a.rend.lines[n+i]) {
			break
		}
	}
	test.ExpectEquality(t, b.cpu.irq, a.cpu.irq)
	test.ExpectEquality(t, b.chip.Load(registers.VICIRQFlags), a.chip.Load(registers.VICIRQFlags))
}

func TestSnapshotVersion(t *testing.T) {
	a := midLine(t)
	m, err := a.chip.WriteSnapshot()
	test.DemandSuccess(t, err)

	b := newHarness(t, timing.VICII, timing.PAL)
	b.step(b.at(10, 0))

	// a newer module is rejected and the chip is unchanged
	m.Minor = vic.SnapshotMinor + 1
	err = b.chip.ReadSnapshot(m)
	test.ExpectEquality(t, curated.Is(err, snapshot.VersionMismatch), true)
	test.ExpectEquality(t, b.chip.Line(), 10)

	m.Major = vic.SnapshotMajor + 1
	m.Minor = 0
	err = b.chip.ReadSnapshot(m)
	test.ExpectEquality(t, curated.Is(err, snapshot.VersionMismatch), true)

	// an older module is accepted
	m.Major = vic.SnapshotMajor
	m.Minor = 0
	b.cpu.clock = a.cpu.clock
	test.ExpectSuccess(t, b.chip.ReadSnapshot(m))
	test.ExpectEquality(t, b.chip.Line(), a.chip.Line())
}

func TestSnapshotWrongModule(t *testing.T) {
	a := newHarness(t, timing.TED, timing.PAL)
	m, err := a.chip.WriteSnapshot()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Name, "TED")

	b := newHarness(t, timing.VICII, timing.PAL)
	err = b.chip.ReadSnapshot(m)
	test.ExpectEquality(t, curated.Is(err, snapshot.WrongModule), true)

	var c snapshot.Container
	c.Add(m)
	_, err = c.Find("VIC-II")
	test.ExpectEquality(t, curated.Is(err, snapshot.MissingModule), true)
}

func TestSnapshotPrepareResume(t *testing.T) {
	h := midLine(t)
	next := h.chip.NextAlarm()

	h.chip.PrepareForSnapshot()
	test.ExpectEquality(t, h.chip.NextAlarm() > next, true)

	h.chip.ResumeAfterSnapshot()
	test.ExpectEquality(t, h.chip.NextAlarm(), next)
}

func TestSnapshotStandard(t *testing.T) {
	a := newHarness(t, timing.VICII, timing.PAL)
	test.DemandSuccess(t, a.chip.SetStandard(timing.NTSC))
	a.step(a.at(312+5, 0))
	test.ExpectEquality(t, a.chip.Profile().Standard, timing.NTSC)

	m, err := a.chip.WriteSnapshot()
	test.DemandSuccess(t, err)

	b := newHarness(t, timing.VICII, timing.PAL)
	b.cpu.clock = a.cpu.clock
	test.DemandSuccess(t, b.chip.ReadSnapshot(m))
	test.ExpectEquality(t, b.chip.Profile().Standard, timing.NTSC)
	test.ExpectEquality(t, b.rend.profile.Standard, timing.NTSC)
}

func TestProfileChange(t *testing.T) {
	h := newHarness(t, timing.VICII, timing.PAL)
	frame := alarm.Cycle(h.chip.Profile().CyclesPerFrame)
	h.step(h.at(100, 0))

	test.DemandSuccess(t, h.chip.SetStandard(timing.NTSC))
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.PAL)

	// the change happens at the end of the frame
	h.step(h.at(311, 0))
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.PAL)
	h.step(frame)
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.NTSC)
	test.ExpectEquality(t, h.chip.Line(), 0)
	test.ExpectEquality(t, h.rend.profile.Standard, timing.NTSC)

	// lines of the new frame are the length of the new profile
	h.step(frame + 10*65)
	test.ExpectEquality(t, h.chip.Line(), 10)
}

func TestTEDProfileChange(t *testing.T) {
	h := newHarness(t, timing.TED, timing.PAL)
	frame := alarm.Cycle(h.chip.Profile().CyclesPerFrame)
	h.step(h.at(100, 0))

	h.chip.Store(registers.TEDControl2, registers.TEDNTSC)
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.PAL)

	h.step(frame)
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.NTSC)

	// clearing the bit returns to PAL at the next frame
	h.chip.Store(registers.TEDControl2, 0)
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.NTSC)
	h.step(frame + alarm.Cycle(h.chip.Profile().CyclesPerFrame))
	test.ExpectEquality(t, h.chip.Profile().Standard, timing.PAL)
}
