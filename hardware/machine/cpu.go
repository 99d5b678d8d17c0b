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
	"github.com/jetsetilly/raster8/hardware/vic"
)

// CPUStats are the counters kept by the processor stand-in.
type CPUStats struct {
	// cycles stolen by the video chip
	Stolen int

	// cycles in which the processor was halted while being stepped
	Halted int

	// number of times the interrupt line went from inactive to active
	IRQs int
}

func (s CPUStats) String() string {
	return fmt.Sprintf("stolen=%d halted=%d irqs=%d", s.Stolen, s.Halted, s.IRQs)
}

// CPU is the processor stand-in. Implements the vic.CPU interface.
type CPU struct {
	clock alarm.Cycle

	// the processor is halted until the clock reaches this value
	haltedUntil alarm.Cycle

	// one bit per interrupt source
	irq uint8

	// write cycles of the most recent instruction
	firstWrite alarm.Cycle
	lastWrite  alarm.Cycle
	writes     int

	Stats CPUStats
}

func (cpu *CPU) String() string {
	return fmt.Sprintf("clk=%d halted=%v irq=%v %s", cpu.clock, cpu.Halted(), cpu.IRQ(), cpu.Stats)
}

// Clock implements the vic.CPU interface.
func (cpu *CPU) Clock() alarm.Cycle {
	return cpu.clock
}

// StealCycles implements the vic.CPU interface.
func (cpu *CPU) StealCycles(start alarm.Cycle, n int) {
	end := start + alarm.Cycle(n)
	if end > cpu.haltedUntil {
		cpu.haltedUntil = end
	}
	cpu.Stats.Stolen += n
}

// SetIRQ implements the vic.CPU interface.
func (cpu *CPU) SetIRQ(id int, active bool) {
	prev := cpu.irq != 0
	if active {
		cpu.irq |= 1 << id
	} else {
		cpu.irq &^= 1 << id
	}
	if !prev && cpu.irq != 0 {
		cpu.Stats.IRQs++
	}
}

// LastWrites implements the vic.CPU interface.
func (cpu *CPU) LastWrites() vic.WriteWindow {
	if cpu.writes == 0 {
		return vic.WriteWindow{}
	}
	return vic.WriteWindow{
		FirstAgo: int(int64(cpu.clock) - int64(cpu.firstWrite)),
		LastAgo:  int(int64(cpu.clock) - int64(cpu.lastWrite)),
		Count:    cpu.writes,
	}
}

// IRQ returns true if any interrupt source is active.
func (cpu *CPU) IRQ() bool {
	return cpu.irq != 0
}

// Halted returns true if the processor is halted by the video chip.
func (cpu *CPU) Halted() bool {
	return cpu.clock < cpu.haltedUntil
}

// a new instruction begins
func (cpu *CPU) instruction() {
	cpu.writes = 0
}

// the instruction writes to memory in the cycle. a write can be recorded
// before the clock reaches the cycle
func (cpu *CPU) write(clk alarm.Cycle) {
	if cpu.writes == 0 {
		cpu.firstWrite = clk
	}
	cpu.lastWrite = clk
	cpu.writes++
}
