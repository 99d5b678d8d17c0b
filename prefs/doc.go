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

// Package prefs facilitates the storing and retrieval of preference values.
// Values are represented by the Bool, Int and String types. Each type can
// have a hook function called before and after a new value is stored.
//
// Preference values are collated in a Group where they are identified by a
// key. A Group can be serialised and restored with the Save() and Load()
// functions.
//
// Values can also be specified on the command line. PushCommandLineStack()
// parses a preferences string and values are taken from it when a key is
// added to a Group. The stack allows command line values to be scoped to a
// single machine instance.
package prefs
