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

// Package statsview launches a local HTTP server offering runtime statistics
// for the emulation. The package is only functional when the statsview build
// tag is present, otherwise Available() returns false and Launch() does
// nothing.
//
// Graphical statistics are served by "github.com/go-echarts/statsview" at
//
//	localhost:16464/debug/statsview
//
// and the standard Go pprof statistics at
//
//	localhost:16464/debug/pprof/
//
// Statistics are useful when tuning the alarm scheduler and the renderer's
// display caching.
package statsview
