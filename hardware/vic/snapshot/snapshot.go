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

// Package snapshot defines the named and versioned module that a machine
// component writes to and reads from a snapshot. A Container collates the
// modules of every component of a machine.
//
// The payload of a module is gob encoded. A reader accepts modules of its
// own version or older and rejects newer modules with a VersionMismatch
// error.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/jetsetilly/raster8/curated"
)

// Sentinel errors.
const (
	VersionMismatch = "snapshot: %s module version %d.%d is newer than %d.%d"
	WrongModule     = "snapshot: expected %s module not %s"
	MissingModule   = "snapshot: no %s module"
	BadPayload      = "snapshot: %s module: %v"
)

// Module is the snapshot of a single machine component.
type Module struct {
	Name  string
	Major int
	Minor int
	Data  []byte
}

func (m *Module) String() string {
	return fmt.Sprintf("%s %d.%d (%d bytes)", m.Name, m.Major, m.Minor, len(m.Data))
}

// NewModule creates a module with the gob encoding of v as its payload.
func NewModule(name string, major int, minor int, v any) (*Module, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(v); err != nil {
		return nil, curated.Errorf(BadPayload, name, err)
	}
	return &Module{
		Name:  name,
		Major: major,
		Minor: minor,
		Data:  b.Bytes(),
	}, nil
}

// Check the name and version of the module. A module with a newer version
// than the reader's version is rejected.
func (m *Module) Check(name string, major int, minor int) error {
	if m.Name != name {
		return curated.Errorf(WrongModule, name, m.Name)
	}
	if m.Major > major || (m.Major == major && m.Minor > minor) {
		return curated.Errorf(VersionMismatch, m.Name, m.Major, m.Minor, major, minor)
	}
	return nil
}

// Decode the payload of the module into v, which must be a pointer.
func (m *Module) Decode(v any) error {
	if err := gob.NewDecoder(bytes.NewReader(m.Data)).Decode(v); err != nil {
		return curated.Errorf(BadPayload, m.Name, err)
	}
	return nil
}

// Container is an ordered collection of modules.
type Container struct {
	Modules []*Module
}

// Add a module to the container. A module with the same name is replaced.
func (c *Container) Add(m *Module) {
	for i := range c.Modules {
		if c.Modules[i].Name == m.Name {
			c.Modules[i] = m
			return
		}
	}
	c.Modules = append(c.Modules, m)
}

// Find the module with the name.
func (c *Container) Find(name string) (*Module, error) {
	for _, m := range c.Modules {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, curated.Errorf(MissingModule, name)
}

// Marshal the container.
func (c *Container) Marshal() ([]byte, error) {
	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(c); err != nil {
		return nil, curated.Errorf(BadPayload, "container", err)
	}
	return b.Bytes(), nil
}

// Unmarshal a container previously created with Marshal().
func Unmarshal(data []byte) (*Container, error) {
	c := &Container{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(c); err != nil {
		return nil, curated.Errorf(BadPayload, "container", err)
	}
	return c, nil
}
