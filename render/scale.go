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

package render

import (
	"image"

	"golang.org/x/image/draw"
)

// convert the colour indexes of the last frame to an image. doubleSize
// doubles the width of the image and doubleScan the height.
func (ras *raster) convert(doubleSize bool, doubleScan bool) *image.RGBA {
	native := image.NewRGBA(image.Rect(0, 0, ras.width, ras.height))
	for i, idx := range ras.last {
		c := ras.palette[int(idx)%len(ras.palette)]
		native.Pix[i*4] = c.R
		native.Pix[i*4+1] = c.G
		native.Pix[i*4+2] = c.B
		native.Pix[i*4+3] = c.A
	}

	if !doubleSize && !doubleScan {
		return native
	}

	w := ras.width
	h := ras.height
	if doubleSize {
		w *= 2
	}
	if doubleScan {
		h *= 2
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), native, native.Bounds(), draw.Src, nil)
	return scaled
}
