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
	"fmt"

	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/logger"
	"github.com/jetsetilly/raster8/prefs"
	"github.com/jetsetilly/raster8/render"
)

// Machine is the reference machine.
type Machine struct {
	ins   *instance.Instance
	Model Model

	Mem    *Memory
	CPU    *CPU
	VIC    *vic.Chip
	Render *render.Renderer

	// the raster registered by the video chip
	Raster int
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The timing profile is taken from the instance's preferences. An empty
// profile selects the PAL profile.
func NewMachine(model Model, ins *instance.Instance) (*Machine, error) {
	m := &Machine{
		ins:   ins,
		Model: model,
		Mem:   newMemory(model),
		CPU:   &CPU{},
	}

	std, err := m.standard(ins.Prefs.Profile.Get().(string))
	if err != nil {
		return nil, err
	}

	p, err := timing.NewProfile(model.Variant(), std)
	if err != nil {
		return nil, err
	}

	m.Render = render.NewRenderer(ins, model.Rasters())
	m.VIC = vic.NewChip(ins, p, m.CPU, m.Mem, m.Render, model.String())
	m.Raster = 0

	// changing the profile preference takes effect at the next frame
	ins.Prefs.Profile.SetHookPost(func(v prefs.Value) error {
		std, err := m.standard(v.(string))
		if err != nil {
			return err
		}
		return m.VIC.SetStandard(std)
	})

	logger.Logf(ins, "machine", "created %s with %s", model, p)

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s %s", m.Model, m.VIC)
}

func (m *Machine) standard(s string) (timing.Standard, error) {
	if s == "" {
		return timing.PAL, nil
	}
	return timing.ParseStandard(s)
}

// Reset the video chip. Memory is unchanged.
func (m *Machine) Reset() {
	m.VIC.Reset()
}

// advance the clock one cycle and catch up the video chip if an alarm is
// due.
func (m *Machine) cycle() {
	m.CPU.clock++
	if m.CPU.clock >= m.VIC.NextAlarm() {
		m.VIC.CatchUp()
	}
}

// run a number of processor cycles. cycles in which the processor is halted
// do not count.
func (m *Machine) run(cycles int) {
	for range cycles {
		m.wait()
		m.cycle()
	}
}

// Step the processor by a number of cycles in which it does not write to
// memory.
func (m *Machine) Step(cycles int) {
	m.CPU.instruction()
	m.run(cycles)
}

// StepLine steps the processor until the raster reaches the next line.
func (m *Machine) StepLine() {
	line := m.VIC.Line()
	for m.VIC.Line() == line {
		m.Step(1)
	}
}

// wait for the video chip to release the processor.
func (m *Machine) wait() {
	for m.CPU.Halted() {
		m.cycle()
		m.CPU.Stats.Halted++
	}
}

// Store a value in a video chip register with an instruction that takes
// the number of cycles. The store happens in the final cycle of the
// instruction and the video chip catches up with the processor when the
// store happens.
func (m *Machine) Store(reg registers.Register, v uint8, cycles int) {
	m.wait()
	m.CPU.instruction()
	m.CPU.clock += alarm.Cycle(max(cycles, 1))
	m.CPU.write(m.CPU.clock)
	m.VIC.Store(reg, v)
}

// Modify a video chip register with a read-modify-write instruction that
// takes the number of cycles. The unmodified value is written in the
// penultimate cycle and the new value in the final cycle.
func (m *Machine) Modify(reg registers.Register, f func(uint8) uint8, cycles int) {
	m.wait()
	m.CPU.instruction()
	end := m.CPU.clock + alarm.Cycle(max(cycles, 2))
	m.CPU.write(end - 1)
	m.CPU.write(end)

	m.CPU.clock = end - 1
	v := m.VIC.Load(reg)
	m.VIC.Store(reg, v)

	m.CPU.clock = end
	m.VIC.Store(reg, f(v))
}

// Load the value of a video chip register at the current clock.
func (m *Machine) Load(reg registers.Register) uint8 {
	return m.VIC.Load(reg)
}

// SetBank selects the video bank of a VIC-II machine.
func (m *Machine) SetBank(bank int) {
	m.VIC.SetBank(bank)
}

// Clock returns the processor clock.
func (m *Machine) Clock() alarm.Cycle {
	return m.CPU.clock
}

// RunFrames runs the machine until the video chip has completed the number
// of frames. The clock moves from alarm to alarm.
func (m *Machine) RunFrames(n int) {
	m.CPU.instruction()
	target := m.VIC.Frame() + n
	for m.VIC.Frame() < target {
		next := m.VIC.NextAlarm()
		if next == alarm.Never {
			panic("machine: video chip has no pending alarm")
		}
		if next > m.CPU.clock {
			m.CPU.clock = next
		}
		m.VIC.CatchUp()
	}
}
