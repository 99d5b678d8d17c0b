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
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/registers"
	"github.com/jetsetilly/raster8/hardware/vic/snapshot"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// Version of the snapshot module written by the chip. Modules of this
// version or older can be read.
const (
	SnapshotMajor = 1
	SnapshotMinor = 1
)

// the payload of the snapshot module. the resolved addresses and the mode
// are derived from the register file when the snapshot is read and so are
// not stored.
//
// unlike the addresses, the render state and the changes still queued for
// the current and next lines are stored, so a snapshot loads with its
// in-flight changes intact. a chip restored in the middle of a line draws
// that line exactly as the chip that was saved.
type state struct {
	Standard        timing.Standard
	PendingStandard timing.Standard
	Pending         bool

	Regs     [registers.NumRegisters]uint8
	BankBase uint16

	Line             int
	LineStartClk     alarm.Cycle
	PrevLine         int
	PrevLineStartClk alarm.Cycle

	YCounter       int
	Idle           bool
	BadLine        bool
	AllowBadLines  bool
	Fetch          int
	VerticalBorder bool

	VCBase int
	Matrix [40]uint8
	Color  [40]uint8

	IRQStatus        uint8
	SpriteSprite     uint8
	SpriteBackground uint8
	LightPenLatched  bool

	FetchClk     alarm.Cycle
	DrawClk      alarm.Cycle
	RasterIRQClk alarm.Cycle

	Frame       int
	SkipFrame   bool
	CursorPhase int

	// the render state is not derivable in the middle of a line
	DrawState changes.State
	ThisLine  []changes.Change
	NextLine  []changes.Change
}

// PrepareForSnapshot unsets every alarm. The alarm triggers are retained
// and are restored by ResumeAfterSnapshot() or ReadSnapshot().
func (c *Chip) PrepareForSnapshot() {
	c.owner.Check()
	c.CatchUp()
	c.sched.UnsetAll()
}

// ResumeAfterSnapshot rearms the alarms unset by PrepareForSnapshot().
func (c *Chip) ResumeAfterSnapshot() {
	c.owner.Check()
	c.rearm()
}

func (c *Chip) rearm() {
	c.sched.UnsetAll()
	c.sched.Set(alarm.Fetch, c.fetchClk)
	c.sched.Set(alarm.Draw, c.drawClk)
	c.sched.Set(alarm.RasterIRQ, c.rasterIRQClk)
}

// WriteSnapshot returns the snapshot module for the chip. The module name is
// the name of the chip variant.
func (c *Chip) WriteSnapshot() (*snapshot.Module, error) {
	s := state{
		Standard:         c.profile.Standard,
		Regs:             c.regs,
		BankBase:         c.bankBase,
		Line:             c.line,
		LineStartClk:     c.lineStartClk,
		PrevLine:         c.prevLine,
		PrevLineStartClk: c.prevLineStartClk,
		YCounter:         c.ycounter,
		Idle:             c.idle,
		BadLine:          c.badLine,
		AllowBadLines:    c.allowBadLines,
		Fetch:            int(c.fetch),
		VerticalBorder:   c.verticalBorder,
		VCBase:           c.vcBase,
		Matrix:           c.matrix,
		Color:            c.color,
		IRQStatus:        c.irqStatus,
		SpriteSprite:     c.spriteSprite,
		SpriteBackground: c.spriteBackground,
		LightPenLatched:  c.lightPenLatched,
		FetchClk:         c.fetchClk,
		DrawClk:          c.drawClk,
		RasterIRQClk:     c.rasterIRQClk,
		Frame:            c.frame,
		SkipFrame:        c.skipFrame,
		CursorPhase:      c.cursorPhase,
		DrawState:        c.drawState,
		ThisLine:         c.thisLine.Changes(),
		NextLine:         c.nextLine.Changes(),
	}

	if c.pendingProfile != nil {
		s.Pending = true
		s.PendingStandard = c.pendingProfile.Standard
	}

	return snapshot.NewModule(c.Label(), SnapshotMajor, SnapshotMinor, s)
}

// ReadSnapshot restores the chip from a snapshot module. Modules with a
// newer version than the chip supports are rejected with a
// snapshot.VersionMismatch error and the chip is unchanged.
func (c *Chip) ReadSnapshot(m *snapshot.Module) error {
	c.owner.Check()

	if err := m.Check(c.Label(), SnapshotMajor, SnapshotMinor); err != nil {
		c.log("%v", err)
		return err
	}

	var s state
	if err := m.Decode(&s); err != nil {
		return err
	}

	p, err := timing.NewProfile(c.profile.Variant, s.Standard)
	if err != nil {
		return err
	}

	var pending *timing.Profile
	if s.Pending {
		pending, err = timing.NewProfile(c.profile.Variant, s.PendingStandard)
		if err != nil {
			return err
		}
	}

	if p.Standard != c.profile.Standard {
		c.profile = p
		c.renderer.Resize(c.raster, c.profile)
	}
	c.pendingProfile = pending

	c.regs = s.Regs
	c.bankBase = s.BankBase
	c.line = s.Line
	c.lineStartClk = s.LineStartClk
	c.prevLine = s.PrevLine
	c.prevLineStartClk = s.PrevLineStartClk
	c.ycounter = s.YCounter
	c.idle = s.Idle
	c.badLine = s.BadLine
	c.allowBadLines = s.AllowBadLines
	c.fetch = fetchState(s.Fetch)
	c.verticalBorder = s.VerticalBorder
	c.vcBase = s.VCBase
	c.matrix = s.Matrix
	c.color = s.Color
	c.irqStatus = s.IRQStatus
	c.spriteSprite = s.SpriteSprite
	c.spriteBackground = s.SpriteBackground
	c.lightPenLatched = s.LightPenLatched
	c.fetchClk = s.FetchClk
	c.drawClk = s.DrawClk
	c.rasterIRQClk = s.RasterIRQClk
	c.frame = s.Frame
	c.skipFrame = s.SkipFrame
	c.cursorPhase = s.CursorPhase

	c.resolveBases()
	c.mode = c.decodeMode()

	c.drawState = s.DrawState
	c.thisLine.Reset()
	for _, ch := range s.ThisLine {
		c.thisLine.Push(ch)
	}
	c.nextLine.Reset()
	for _, ch := range s.NextLine {
		c.nextLine.Push(ch)
	}

	c.rearm()
	c.cpu.SetIRQ(IRQSource, c.IRQ())

	return nil
}
