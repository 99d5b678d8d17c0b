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

// Package render is the reference rendering collaborator of the video chip.
// It composes the lines handed to it by the chip into images, one image per
// registered raster.
//
// Lines are composed column by column. The changes made by the processor
// during a line are applied to the render state in column order so that a
// register write is visible from the column in which it happened.
//
// The number of rasters that can be registered depends on the machine model.
// Registering more rasters than the model supports is a programming error
// and panics.
//
// Composed lines are cached by a digest of everything that affects the line.
// A line that has been seen before is copied from the cache rather than
// composed again. Caching can be disabled with the render.cache preference.
//
// The output image of a raster can be doubled horizontally and vertically
// with the render.doublesize and render.doublescan preferences.
package render
