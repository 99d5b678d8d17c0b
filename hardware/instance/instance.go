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

// Package instance defines those parts of the emulation that might change from
// instance to instance of a machine but are not the machine itself.
//
// Particularly useful when running more than one instance of the emulation in
// parallel. A comparison instance for example shares preferences with the
// main instance but does not log.
package instance

import (
	"github.com/jetsetilly/raster8/hardware/preferences"
)

// Label indicates the context of the instance.
type Label string

// List of valid Label values.
const (
	Main       Label = ""
	Comparison Label = "comparison"
	Snapshot   Label = "snapshot"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of a machine.
type Instance struct {
	Label Label

	// the preferences of the running instance. can be shared with other
	// instances
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance type.
//
// The prefs argument can be nil, in which case a new preferences instance will
// be created. Providing a non-nil value allows the preferences of more than
// one instance to be synchronised.
func NewInstance(label Label, prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	ins.Prefs = prefs

	return ins, nil
}

// AllowLogging implements the logger.Permission interface. Only the main
// instance is allowed to log.
func (ins *Instance) AllowLogging() bool {
	return ins.Label == Main
}

// Normalise ensures the instance is in a known default state. Useful for
// testing where the initial state must be the same for every run.
func (ins *Instance) Normalise() {
	ins.Prefs.SetDefaults()
}
