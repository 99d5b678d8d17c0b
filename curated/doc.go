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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a formatting
// pattern and placeholder values and returns an error. The pattern is
// remembered and is used to identify the error later:
//
//	e := curated.Errorf("snapshot: %s: unsupported version %d.%d", name, major, minor)
//
//	if curated.Is(e, "snapshot: %s: unsupported version %d.%d") {
//		...
//	}
//
// Patterns that are tested for should be exported as constants by the package
// that creates them. For example, snapshot.VersionMismatch.
//
// The Has() function is similar to Is() but checks if a pattern occurs
// somewhere in the error chain:
//
//	f := curated.Errorf("machine: %v", e)
//	curated.Has(f, snapshot.VersionMismatch) // true
//	curated.Is(f, snapshot.VersionMismatch)  // false
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference as being between 'expected' and
// 'unexpected' errors.
//
// The Error() function normalises the message chain by removing duplicate
// adjacent parts. Chains are considered to be parts separated by the sub-string
// ": ". So wrapping an error with the same prefix does not produce messages
// like "machine: machine: snapshot incomplete".
package curated
