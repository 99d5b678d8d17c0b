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
	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
	"github.com/jetsetilly/raster8/hardware/vic/modes"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
)

// sprite X coordinate of the first pixel of the 40 column display window
const spriteWindowX = 24

// the 38 column display window is narrower than the 40 column window by
// seven pixels on the left and nine on the right
const (
	narrowLeft  = 7
	narrowRight = 9
)

// scratch buffers for composing a line.
type lineBuffer struct {
	// graphics byte for each text column
	data [40]uint8

	// pixel is foreground graphics
	fg []bool

	// pixel is covered by the border
	border []bool

	// sprites with a pixel at each position
	sprites []uint8

	// digest input. reused between lines
	key []byte
}

func (b *lineBuffer) resize(width int) {
	b.fg = make([]bool, width)
	b.border = make([]bool, width)
	b.sprites = make([]uint8, width)
}

// walker applies the changes of a line to the render state in column order.
type walker struct {
	s       changes.State
	changes []changes.Change
	idx     int
}

func newWalker(l *vic.Line) walker {
	return walker{s: l.Start, changes: l.Changes}
}

// to applies every change up to and including the column.
func (w *walker) to(column int) {
	for w.idx < len(w.changes) && w.changes[w.idx].Column <= column {
		w.changes[w.idx].Apply(&w.s)
		w.idx++
	}
}

// fetch the graphics byte of every text column.
func (ras *raster) fetch(l *vic.Line) {
	p := l.Profile
	w := newWalker(l)
	for i := range p.TextColumns {
		w.to(p.TextColumn + i)
		ras.line.data[i] = ras.graphicsByte(l, &w.s, i)
	}
}

func (ras *raster) graphicsByte(l *vic.Line, s *changes.State, i int) uint8 {
	if l.Idle {
		if l.Profile.Variant == timing.VICII {
			return s.IdleData
		}
		return 0
	}

	if s.Mode.Bitmap() {
		offset := ((l.VC+i)&0x3ff)*8 + l.RC

		// the extended colour bit forces address lines 9 and 10 low
		if s.Mode.Extended() {
			offset &= 0x19ff
		}

		base := s.Bitmap[0]
		if offset >= 0x1000 {
			base = s.Bitmap[1]
			offset -= 0x1000
		}
		return ras.mem.Read(base.Add(offset))
	}

	code := l.Matrix[i]
	if s.Mode.Extended() {
		code &= 0x3f
	} else if l.Profile.Variant == timing.TED && l.Reverse && !s.Mode.Multicolor() {
		code &= 0x7f
	}
	return ras.mem.Read(s.Char.Add(int(code)*8 + l.RC))
}

// fill a range of pixels with the border colour. graphics under the narrow
// window border still take part in sprite collisions so keepFG is true for
// those pixels.
func (ras *raster) fillBorder(row []uint8, from int, to int, c uint8, keepFG bool) {
	for x := from; x < to; x++ {
		row[x] = c
		ras.line.border[x] = true
		if !keepFG {
			ras.line.fg[x] = false
		}
	}
}

// compose the line into the row of colour indexes. returns the collisions
// of the line.
func (ras *raster) compose(l *vic.Line, row []uint8) vic.Collisions {
	p := l.Profile
	clear(ras.line.fg)
	clear(ras.line.border)

	w := newWalker(l)
	textStart := p.TextColumn * 8
	textEnd := textStart + p.TextColumns*8

	// pixels before this position have been written by a character
	written := textStart

	for col := range p.VisibleColumns {
		w.to(col)
		s := &w.s
		x := col * 8
		text := col - p.TextColumn

		if l.Border || text < 0 || text >= p.TextColumns {
			ras.fillBorder(row, x, x+8, s.Border, false)
			continue
		}

		// gap left by an increase of the horizontal scroll
		start := x + int(s.XScroll)
		gap := ras.gapColor(l, s)
		for ; written < start; written++ {
			row[written] = gap
		}

		ras.character(l, s, text, row[start:start+8], ras.line.fg[start:start+8])
		written = start + 8

		if !s.CSEL {
			if text == 0 {
				ras.fillBorder(row, textStart, textStart+narrowLeft, s.Border, true)
			} else if text == p.TextColumns-1 {
				ras.fillBorder(row, textEnd-narrowRight, textEnd, s.Border, true)
			}
		}
	}

	if p.Variant == timing.VICII {
		return ras.sprites(l, row)
	}
	return vic.Collisions{}
}

// gapColor is the colour of pixels between the border and the first
// character when the display is scrolled.
func (ras *raster) gapColor(l *vic.Line, s *changes.State) uint8 {
	if l.Idle {
		return s.IdleBackground
	}
	if s.Mode.Background() == modes.BackgroundBlack {
		return 0
	}
	return s.Background[0]
}

// character draws the graphics of a single text column. colours is indexed
// by the pixel value: one bit for hires graphics or two bits for multicolour
// graphics.
func (ras *raster) character(l *vic.Line, s *changes.State, i int, px []uint8, fg []bool) {
	var colors [4]uint8
	var mc bool

	if l.Profile.Variant == timing.TED {
		colors, mc = ras.tedColors(l, s, i)
	} else {
		colors, mc = ras.viciiColors(l, s, i)
	}

	data := ras.line.data[i]

	if l.Profile.Variant == timing.TED && !l.Idle && !s.Mode.Bitmap() && !mc {
		data = ras.tedAttributes(l, s, i, data)
	}

	if mc {
		for b := 0; b < 8; b += 2 {
			v := (data >> (6 - b)) & 0x03
			px[b] = colors[v]
			px[b+1] = colors[v]
			fg[b] = v&0x02 == 0x02
			fg[b+1] = fg[b]
		}
		return
	}

	for b := range 8 {
		v := (data >> (7 - b)) & 0x01
		px[b] = colors[v]
		fg[b] = v == 0x01
	}
}

func (ras *raster) viciiColors(l *vic.Line, s *changes.State, i int) ([4]uint8, bool) {
	m := s.Mode

	if l.Idle {
		return [4]uint8{s.IdleBackground}, m.Multicolor()
	}

	if m.Illegal() {
		return [4]uint8{}, m.Multicolor()
	}

	code := l.Matrix[i]
	color := l.Color[i] & 0x0f

	switch m {
	case modes.NormalText:
		return [4]uint8{s.Background[0], color}, false
	case modes.MulticolorText:
		if color&0x08 == 0x08 {
			return [4]uint8{s.Background[0], s.Background[1], s.Background[2], color & 0x07}, true
		}
		return [4]uint8{s.Background[0], color & 0x07}, false
	case modes.ExtendedText:
		return [4]uint8{s.Background[code>>6], color}, false
	case modes.HiresBitmap:
		return [4]uint8{code & 0x0f, code >> 4}, false
	case modes.MulticolorBitmap:
		return [4]uint8{s.Background[0], code >> 4, code & 0x0f, color}, true
	}

	return [4]uint8{}, false
}

// the TED attribute byte of a character cell holds the colour in bits zero
// to six and the flash bit in bit seven. in bitmap modes the luminance of
// the two colours is in the attribute byte and the hue in the screen code.
func (ras *raster) tedColors(l *vic.Line, s *changes.State, i int) ([4]uint8, bool) {
	m := s.Mode

	if l.Idle {
		return [4]uint8{s.IdleBackground}, false
	}

	if m.Illegal() {
		return [4]uint8{}, m.Multicolor()
	}

	code := l.Matrix[i]
	attr := l.Color[i]

	switch m {
	case modes.NormalText:
		return [4]uint8{s.Background[0], attr & 0x7f}, false
	case modes.MulticolorText:
		if attr&0x08 == 0x08 {
			return [4]uint8{s.Background[0], s.Background[1], s.Background[2], attr & 0x77}, true
		}
		return [4]uint8{s.Background[0], attr & 0x77}, false
	case modes.ExtendedText:
		return [4]uint8{s.Background[code>>6], attr & 0x7f}, false
	case modes.HiresBitmap:
		zero := code>>4 | (attr>>4&0x07)<<4
		one := code&0x0f | (attr&0x07)<<4
		return [4]uint8{zero, one}, false
	case modes.MulticolorBitmap:
		one := code>>4 | (attr>>4&0x07)<<4
		two := code&0x0f | (attr&0x07)<<4
		return [4]uint8{s.Background[0], one, two, s.Background[1]}, true
	}

	return [4]uint8{}, false
}

// tedAttributes applies reverse video, flashing and the hardware cursor to
// the graphics byte of a hires text cell.
func (ras *raster) tedAttributes(l *vic.Line, s *changes.State, i int, data uint8) uint8 {
	if s.Mode.Illegal() {
		return data
	}

	code := l.Matrix[i]
	attr := l.Color[i]

	if attr&0x80 == 0x80 && !l.Flash {
		data = 0
	}
	if l.Reverse && !s.Mode.Extended() && code&0x80 == 0x80 {
		data ^= 0xff
	}
	if (l.VC+i)&0x3ff == l.Cursor && l.Flash {
		data ^= 0xff
	}
	return data
}

// sprites draws the VIC-II sprites over the composed line. Sprite zero has
// the highest priority and is drawn last.
func (ras *raster) sprites(l *vic.Line, row []uint8) vic.Collisions {
	var col vic.Collisions

	occupied := ras.line.sprites
	clear(occupied)

	offset := l.Profile.TextColumn*8 - spriteWindowX

	for i := len(l.Sprites) - 1; i >= 0; i-- {
		sp := &l.Sprites[i]
		if !sp.Enabled {
			continue
		}

		bit := uint8(1) << i
		data := uint32(sp.Data[0])<<16 | uint32(sp.Data[1])<<8 | uint32(sp.Data[2])

		scale := 1
		if sp.XExpand {
			scale = 2
		}

		for b := range 24 {
			var c uint8
			if sp.Multicolor {
				switch (data >> (22 - (b &^ 1))) & 0x03 {
				case 0x00:
					continue
				case 0x01:
					c = l.SpriteMulticolor[0]
				case 0x02:
					c = sp.Color
				case 0x03:
					c = l.SpriteMulticolor[1]
				}
			} else {
				if (data>>(23-b))&0x01 == 0x00 {
					continue
				}
				c = sp.Color
			}

			for k := range scale {
				x := sp.X + offset + b*scale + k
				if x < 0 || x >= len(row) {
					continue
				}

				if occupied[x] != 0 {
					col.SpriteSprite |= occupied[x] | bit
				}
				occupied[x] |= bit

				if ras.line.fg[x] {
					col.SpriteBackground |= bit
				}

				if ras.line.border[x] || (sp.Behind && ras.line.fg[x]) {
					continue
				}
				row[x] = c
			}
		}
	}

	return col
}
