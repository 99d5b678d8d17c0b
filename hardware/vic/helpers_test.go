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
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/test"
)

type steal struct {
	start alarm.Cycle
	n     int
}

// cpu stands in for the processor. the clock is moved by the test and is not
// affected by stolen cycles.
type cpu struct {
	clock  alarm.Cycle
	stolen []steal
	irq    bool
	writes vic.WriteWindow
}

func (c *cpu) Clock() alarm.Cycle {
	return c.clock
}

func (c *cpu) StealCycles(start alarm.Cycle, n int) {
	c.stolen = append(c.stolen, steal{start: start, n: n})
}

func (c *cpu) SetIRQ(id int, active bool) {
	if id == vic.IRQSource {
		c.irq = active
	}
}

func (c *cpu) LastWrites() vic.WriteWindow {
	return c.writes
}

type memory struct {
	ram     [0x10000]uint8
	rom     [0x8000]uint8
	color   [0x400]uint8
	overlay banks.Overlay
}

func (m *memory) Read(a banks.Address) uint8 {
	switch a.Source {
	case banks.CharROM:
		return m.rom[a.Offset&0x7fff]
	case banks.ColorRAM:
		return m.color[a.Offset&0x3ff] | 0xf0
	}
	return m.ram[a.Offset]
}

func (m *memory) CharROMOverlay(addr uint16) bool {
	return m.overlay.Match(addr)
}

// renderer records a summary of every line handed to it.
type renderer struct {
	lines   []string
	idle    map[int]bool
	matrix  map[int][40]uint8
	frames  int
	resized int
	profile *timing.Profile

	// returns the collisions for a line. can be nil
	collide func(l *vic.Line) vic.Collisions

	// most recent line handed to the renderer
	last        vic.Line
	lastChanges string
}

func (r *renderer) RegisterRaster(_ string, _ vic.Memory) int {
	return 0
}

func (r *renderer) Resize(_ int, p *timing.Profile) {
	r.resized++
	r.profile = p
}

func (r *renderer) NewFrame(_ int, _ int, _ bool) {
	r.frames++
}

func (r *renderer) DrawLine(_ int, l *vic.Line) vic.Collisions {
	r.last = *l
	r.last.Changes = nil
	r.lastChanges = fmt.Sprintf("%v", l.Changes)
	r.idle[l.Raster] = l.Idle
	r.matrix[l.Raster] = l.Matrix
	r.lines = append(r.lines, fmt.Sprintf("%d/%03d rc=%d vc=%03x idle=%v bad=%v border=%v start=%v changes=%v matrix=%v sprites=%v",
		l.Frame, l.Raster, l.RC, l.VC, l.Idle, l.BadLine, l.Border, l.Start, l.Changes, l.Matrix, l.Sprites))
	if r.collide != nil {
		return r.collide(l)
	}
	return vic.Collisions{}
}

type harness struct {
	chip *vic.Chip
	cpu  *cpu
	mem  *memory
	rend *renderer
}

func newHarness(t *testing.T, v timing.Variant, std timing.Standard) *harness {
	t.Helper()

	ins, err := instance.NewInstance(instance.Comparison, nil)
	test.DemandSuccess(t, err)

	p, err := timing.NewProfile(v, std)
	test.DemandSuccess(t, err)

	h := &harness{
		cpu: &cpu{},
		mem: &memory{},
		rend: &renderer{
			idle:   make(map[int]bool),
			matrix: make(map[int][40]uint8),
		},
	}
	if v == timing.VICII {
		h.mem.overlay = banks.OverlayC64
	}
	h.chip = vic.NewChip(ins, p, h.cpu, h.mem, h.rend, "test")
	return h
}

// step the clock one cycle at a time, catching up whenever an alarm is due.
func (h *harness) step(to alarm.Cycle) {
	for h.cpu.clock < to {
		h.cpu.clock++
		if h.cpu.clock >= h.chip.NextAlarm() {
			h.chip.CatchUp()
		}
	}
}

// jump the clock and catch up once.
func (h *harness) jump(to alarm.Cycle) {
	h.cpu.clock = to
	h.chip.CatchUp()
}

// at returns the cycle of a line and cycle in the first frame.
func (h *harness) at(line int, cycle int) alarm.Cycle {
	p := h.chip.Profile()
	return alarm.Cycle(line*p.CyclesPerLine + cycle)
}

// display enables the display with the vertical scroll value.
func (h *harness) display(ys uint8) {
	v := registers.DEN | registers.RSEL | ys
	if h.chip.Profile().Variant == timing.TED {
		h.chip.Store(registers.TEDControl1, v)
	} else {
		h.chip.Store(registers.VICControlY, v)
	}
}
