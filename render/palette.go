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
	"image/color"
	"math"

	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// the sixteen colours of the VIC-II
var vicii = []color.RGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x81, G: 0x33, B: 0x38, A: 0xff},
	{R: 0x75, G: 0xce, B: 0xc8, A: 0xff},
	{R: 0x8e, G: 0x3c, B: 0x97, A: 0xff},
	{R: 0x56, G: 0xac, B: 0x4d, A: 0xff},
	{R: 0x2e, G: 0x2c, B: 0x9b, A: 0xff},
	{R: 0xed, G: 0xf1, B: 0x71, A: 0xff},
	{R: 0x8e, G: 0x50, B: 0x29, A: 0xff},
	{R: 0x55, G: 0x38, B: 0x00, A: 0xff},
	{R: 0xc4, G: 0x6c, B: 0x71, A: 0xff},
	{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff},
	{R: 0x7b, G: 0x7b, B: 0x7b, A: 0xff},
	{R: 0xa9, G: 0xff, B: 0x9f, A: 0xff},
	{R: 0x70, G: 0x6d, B: 0xeb, A: 0xff},
	{R: 0xb2, G: 0xb2, B: 0xb2, A: 0xff},
}

// phase angle in degrees of each TED hue. hues zero and one have no colour
// component
var tedPhase = [16]float64{
	0, 0, 103, 283, 53, 241, 347, 167,
	123, 148, 195, 83, 265, 323, 355, 213,
}

// luma of each TED luminance value
var tedLuma = [8]float64{0.18, 0.22, 0.27, 0.33, 0.45, 0.56, 0.72, 0.92}

const tedSaturation = 0.2

func clamp(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// the 128 colours of the TED. the index of a colour is the luminance in bits
// four to six and the hue in bits zero to three
func ted() []color.RGBA {
	p := make([]color.RGBA, 128)
	for i := range p {
		hue := i & 0x0f
		lum := i >> 4

		// hue zero is black at every luminance
		if hue == 0 {
			p[i] = color.RGBA{A: 0xff}
			continue
		}

		Y := tedLuma[lum]
		var U, V float64
		if hue > 1 {
			phi := tedPhase[hue] * math.Pi / 180
			U = tedSaturation * math.Cos(phi)
			V = tedSaturation * math.Sin(phi)
		}

		// YUV to RGB
		R := clamp(Y + 1.140*V)
		G := clamp(Y - 0.395*U - 0.581*V)
		B := clamp(Y + 2.032*U)

		p[i] = color.RGBA{
			R: uint8(R * 255),
			G: uint8(G * 255),
			B: uint8(B * 255),
			A: 0xff,
		}
	}
	return p
}

// Palette returns the colours of the video chip variant. The colour values
// of the chip are indexes into the palette.
func Palette(v timing.Variant) []color.RGBA {
	if v == timing.TED {
		return ted()
	}
	p := make([]color.RGBA, len(vicii))
	copy(p, vicii)
	return p
}
