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

// Package modalflag wraps the flag package of the Go standard library and
// adds program modes. A mode is a command line argument that selects a
// different operation of the program, each with its own set of flags. The
// raster8 command has RUN and TRACE modes for example.
//
// Arguments are given to NewArgs() and are then processed by one or more
// calls to Parse(). Flags and sub-modes for the next Parse() are added
// beforehand:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "TRACE")
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode in the list is the default, selected when the argument
// after the flags does not name a sub-mode. Sub-mode comparisons are case
// insensitive and Mode() always returns the upper case name.
//
// A mode's own flags are handled by calling NewMode() and then Parse()
// again:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 50, "number of frames to run")
//		md.Parse()
//		run(*frames, md.RemainingArgs())
//	}
//
// Path() returns every mode selected so far separated by a forward slash.
package modalflag
