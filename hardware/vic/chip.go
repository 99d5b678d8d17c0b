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

package vic

import (
	"fmt"

	"github.com/jetsetilly/raster8/assert"
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/modes"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/logger"
)

// the progress of the bad line fetch for the current line.
type fetchState int

const (
	// the fetch alarm has not yet fired for the line
	fetchPending fetchState = iota

	// the fetch alarm has fired and the line was not a bad line
	fetchChecked

	// the video matrix has been fetched for the line
	fetchDone
)

// Chip is a single video chip. It must be created with NewChip().
type Chip struct {
	ins   *instance.Instance
	owner assert.Owner

	cpu      CPU
	mem      Memory
	renderer Renderer
	raster   int

	profile *timing.Profile

	// profile swaps take effect at the next frame boundary
	pendingProfile *timing.Profile

	sched *alarm.Scheduler

	// triggers of the three alarms. kept in step with the scheduler and
	// used to rearm the alarms after a snapshot
	fetchClk     alarm.Cycle
	drawClk      alarm.Cycle
	rasterIRQClk alarm.Cycle

	regs [registers.NumRegisters]uint8

	// VIC-II bank base as selected by the machine
	bankBase uint16

	bases banks.Bases
	mode  modes.Mode

	line         int
	lineStartClk alarm.Cycle

	// the line before the current line. the draw alarm advances the line in
	// the final cycle of a line, during which the raster is still drawing
	// the previous line
	prevLine         int
	prevLineStartClk alarm.Cycle

	ycounter      int
	idle          bool
	badLine       bool
	allowBadLines bool
	fetch         fetchState

	// vertical border flip-flop
	verticalBorder bool

	vcBase int
	matrix [40]uint8
	color  [40]uint8

	// the IRQ flags register. bit 7 is set when any enabled source is
	// active
	irqStatus uint8

	spriteSprite     uint8
	spriteBackground uint8

	// light pen can only be latched once per frame
	lightPenLatched bool

	frame       int
	skipFrame   bool
	cursorPhase int

	// render state at the start of the current line and the changes queued
	// for the current and next lines
	drawState changes.State
	thisLine  *changes.Queue
	nextLine  *changes.Queue

	// reused for every call to Renderer.DrawLine()
	out Line
}

// NewChip is the preferred method of initialisation for the Chip type. The
// chip is powered up and ready to be driven by the processor on return.
func NewChip(ins *instance.Instance, p *timing.Profile, cpu CPU, mem Memory, renderer Renderer, label string) *Chip {
	c := &Chip{
		ins:      ins,
		cpu:      cpu,
		mem:      mem,
		renderer: renderer,
		profile:  p,
		sched:    alarm.NewScheduler(),
		thisLine: changes.NewQueue(),
		nextLine: changes.NewQueue(),
	}

	c.sched.Register(alarm.Fetch, c.fetchAlarm)
	c.sched.Register(alarm.Draw, c.drawAlarm)
	c.sched.Register(alarm.RasterIRQ, c.rasterIRQAlarm)

	c.raster = renderer.RegisterRaster(label, mem)
	renderer.Resize(c.raster, c.profile)

	c.PowerUp()

	return c
}

func (c *Chip) String() string {
	return fmt.Sprintf("%s line=%03d rc=%d vc=%03x idle=%v bad=%v border=%v irq=%02x",
		c.profile, c.line, c.ycounter, c.vcBase, c.idle, c.badLine, c.verticalBorder, c.irqStatus)
}

// Label returns the name of the chip. The value is also the name of the
// chip's snapshot module.
func (c *Chip) Label() string {
	return c.profile.Variant.String()
}

// Profile returns the timing profile currently in use.
func (c *Chip) Profile() *timing.Profile {
	return c.profile
}

// PowerUp zeroes the register file, counters and fetch buffers and then
// resets the chip.
func (c *Chip) PowerUp() {
	c.regs = [registers.NumRegisters]uint8{}
	c.bankBase = 0
	c.matrix = [40]uint8{}
	c.color = [40]uint8{}
	c.frame = 0
	c.cursorPhase = 0
	c.Reset()
}

// Reset the raster state, interrupts and alarms. The register file and video
// bank are unchanged. The current processor cycle becomes the start of
// raster line zero.
func (c *Chip) Reset() {
	c.owner.Check()

	c.sched.UnsetAll()

	if c.pendingProfile != nil {
		c.profile = c.pendingProfile
		c.pendingProfile = nil
		c.renderer.Resize(c.raster, c.profile)
	}

	c.line = 0
	c.lineStartClk = c.cpu.Clock()
	c.prevLine = 0
	c.prevLineStartClk = c.lineStartClk
	c.ycounter = 0
	c.idle = true
	c.badLine = false
	c.allowBadLines = false
	c.fetch = fetchPending
	c.verticalBorder = true
	c.vcBase = 0
	c.irqStatus = 0
	c.spriteSprite = 0
	c.spriteBackground = 0
	c.lightPenLatched = false
	c.skipFrame = false

	c.resolveBases()
	c.mode = c.decodeMode()
	c.deriveDrawState()
	c.thisLine.Reset()
	c.nextLine.Reset()

	c.armFrame()
	c.setRasterIRQ(c.compareLine(), c.cpu.Clock())
	c.cpu.SetIRQ(IRQSource, false)

	c.renderer.NewFrame(c.raster, c.frame, c.skipFrame)
}

// armFrame arms the draw and fetch alarms relative to the current line.
func (c *Chip) armFrame() {
	c.drawClk = c.lineStartClk + alarm.Cycle(c.profile.DrawCycle)
	c.sched.Set(alarm.Draw, c.drawClk)

	if c.profile.InDMAWindow(c.line) && c.fetch == fetchPending {
		c.fetchClk = c.lineStartClk + alarm.Cycle(c.profile.FetchCycle)
	} else {
		c.fetchClk = c.nextWindow()
	}
	c.sched.Set(alarm.Fetch, c.fetchClk)
}

// nextWindow returns the fetch cycle of the next first DMA line. This frame's
// if the raster has not yet reached it, otherwise the next frame's.
func (c *Chip) nextWindow() alarm.Cycle {
	lines := c.profile.FirstDMALine - c.line
	if lines <= 0 {
		lines += c.profile.LinesPerFrame
	}
	return c.lineStartClk + alarm.Cycle(lines*c.profile.CyclesPerLine+c.profile.FetchCycle)
}

// CatchUp fires every alarm that is due at the current processor clock.
func (c *Chip) CatchUp() {
	c.owner.Check()
	c.sched.Dispatch(c.cpu.Clock())
}

// NextAlarm returns the cycle at which the next alarm is due. The processor
// must call CatchUp() when its clock reaches this value.
func (c *Chip) NextAlarm() alarm.Cycle {
	return c.sched.Next()
}

// SetStandard requests a change of timing profile. The change takes effect
// at the next frame boundary.
func (c *Chip) SetStandard(std timing.Standard) error {
	p, err := timing.NewProfile(c.profile.Variant, std)
	if err != nil {
		return err
	}
	if p.Standard == c.profile.Standard {
		c.pendingProfile = nil
		return nil
	}
	c.pendingProfile = p
	return nil
}

// SetBank selects the 16K video bank of the VIC-II. The bank is selected by
// hardware outside of the chip and is not part of the register file. Has no
// effect for the TED.
func (c *Chip) SetBank(bank int) {
	if c.profile.Variant != timing.VICII {
		return
	}
	c.CatchUp()
	c.bankBase = uint16(bank&0x03) * 0x4000
	c.updateBases()
	c.queueIdleData()
}

// Bank returns the current VIC-II bank.
func (c *Chip) Bank() int {
	return int(c.bankBase / 0x4000)
}

// Line returns the raster line the chip has advanced to. In the final cycle
// of a line this is already the next line. RasterLine() returns the line
// being drawn.
func (c *Chip) Line() int {
	return c.line
}

// RasterLine returns the line being drawn at the current processor cycle.
// This is the value read from the raster registers.
func (c *Chip) RasterLine() int {
	l, _ := c.position(c.cpu.Clock())
	return l
}

// position returns the line being drawn at the cycle and the cycle at which
// that line began.
func (c *Chip) position(clk alarm.Cycle) (int, alarm.Cycle) {
	if clk < c.lineStartClk {
		return c.prevLine, c.prevLineStartClk
	}
	return c.line, c.lineStartClk
}

// Frame returns the number of frames since power up.
func (c *Chip) Frame() int {
	return c.frame
}

// BadLine returns true if the current line is a bad line.
func (c *Chip) BadLine() bool {
	return c.badLine
}

// Idle returns true if the chip is in idle state.
func (c *Chip) Idle() bool {
	return c.idle
}

// YCounter returns the row counter.
func (c *Chip) YCounter() int {
	return c.ycounter
}

// Mode returns the display mode selected by the register file.
func (c *Chip) Mode() modes.Mode {
	return c.mode
}

// Bases returns the resolved addresses of the video memory areas.
func (c *Chip) Bases() banks.Bases {
	return c.bases
}

// IRQ returns true if the chip is driving the interrupt line.
func (c *Chip) IRQ() bool {
	return c.irqStatus&registers.IRQ == registers.IRQ
}

// Alarms returns the scheduler driving the chip.
func (c *Chip) Alarms() *alarm.Scheduler {
	return c.sched
}

// Peek returns the raw value of a register without side effects.
func (c *Chip) Peek(reg registers.Register) uint8 {
	return c.regs[reg&(registers.NumRegisters-1)]
}

func (c *Chip) log(detail string, args ...any) {
	logger.Logf(c.ins, c.Label(), detail, args...)
}
