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

// Package test bundles helper functions that remove common boilerplate from
// the test files of the other packages.
//
// The ExpectSuccess() and ExpectFailure() functions test for success and
// failure under generic conditions. The nil type is considered a success,
// because of how errors usually work.
//
// ExpectEquality() and ExpectInequality() compare like-typed values. The
// Demand variants stop the test on failure and should be used when the
// remainder of the test depends on the value being correct.
//
// The CompareWriter and RingWriter types implement io.Writer and are used to
// capture output, for example from the logger.
package test
