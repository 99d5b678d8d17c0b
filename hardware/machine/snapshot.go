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
	"github.com/jetsetilly/raster8/hardware/alarm"
	"github.com/jetsetilly/raster8/hardware/vic/snapshot"
	"github.com/jetsetilly/raster8/logger"
)

// Sentinel errors.
const (
	SnapshotIncomplete = "machine: snapshot incomplete (%s)"
	WrongModel         = "machine: snapshot is for %s not %s"
)

// name and version of the machine's own snapshot module
const (
	moduleName  = "machine"
	moduleMajor = 1
	moduleMinor = 0
)

type machineState struct {
	Model Model

	Clock       alarm.Cycle
	HaltedUntil alarm.Cycle
	IRQ         uint8
	FirstWrite  alarm.Cycle
	LastWrite   alarm.Cycle
	Writes      int

	RAM   []uint8
	Color [0x400]uint8
}

// SaveSnapshot returns the serialised state of the machine and the video
// chip.
func (m *Machine) SaveSnapshot() ([]byte, error) {
	m.VIC.PrepareForSnapshot()
	defer m.VIC.ResumeAfterSnapshot()

	var c snapshot.Container

	mm, err := snapshot.NewModule(moduleName, moduleMajor, moduleMinor, machineState{
		Model:       m.Model,
		Clock:       m.CPU.clock,
		HaltedUntil: m.CPU.haltedUntil,
		IRQ:         m.CPU.irq,
		FirstWrite:  m.CPU.firstWrite,
		LastWrite:   m.CPU.lastWrite,
		Writes:      m.CPU.writes,
		RAM:         m.Mem.RAM,
		Color:       m.Mem.Color,
	})
	if err != nil {
		return nil, err
	}
	c.Add(mm)

	vm, err := m.VIC.WriteSnapshot()
	if err != nil {
		return nil, err
	}
	c.Add(vm)

	return c.Marshal()
}

// LoadSnapshot restores a snapshot created by SaveSnapshot(). A module that
// is missing or has an unsupported version is skipped and the remaining
// modules are still restored. In that case the returned error is a
// SnapshotIncomplete error naming the skipped modules.
func (m *Machine) LoadSnapshot(data []byte) error {
	c, err := snapshot.Unmarshal(data)
	if err != nil {
		return err
	}

	var skipped []string
	skip := func(name string, err error) {
		logger.Log(m.ins, "machine", err)
		skipped = append(skipped, name)
	}

	mm, err := c.Find(moduleName)
	if err != nil {
		skip(moduleName, err)
	} else if err := mm.Check(moduleName, moduleMajor, moduleMinor); err != nil {
		skip(moduleName, err)
	} else {
		var s machineState
		if err := mm.Decode(&s); err != nil {
			return err
		}
		if s.Model != m.Model {
			return curated.Errorf(WrongModel, s.Model, m.Model)
		}
		m.CPU.clock = s.Clock
		m.CPU.haltedUntil = s.HaltedUntil
		m.CPU.irq = s.IRQ
		m.CPU.firstWrite = s.FirstWrite
		m.CPU.lastWrite = s.LastWrite
		m.CPU.writes = s.Writes
		copy(m.Mem.RAM, s.RAM)
		m.Mem.Color = s.Color
	}

	name := m.VIC.Label()
	vm, err := c.Find(name)
	if err != nil {
		skip(name, err)
	} else if err := m.VIC.ReadSnapshot(vm); err != nil {
		if !curated.Is(err, snapshot.VersionMismatch) {
			return err
		}
		skip(name, err)
	}

	if len(skipped) > 0 {
		return curated.Errorf(SnapshotIncomplete, strings.Join(skipped, ", "))
	}
	return nil
}
