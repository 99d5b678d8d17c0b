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
	"crypto/sha1"

	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/banks"
	"github.com/jetsetilly/raster8/hardware/vic/changes"
)

// maximum number of lines in the cache. the cache is emptied when the limit
// is reached
const cacheLimit = 4096

type cached struct {
	pixels     []uint8
	collisions vic.Collisions
}

type cache struct {
	entries map[[sha1.Size]byte]cached
}

func newCache() *cache {
	return &cache{
		entries: make(map[[sha1.Size]byte]cached),
	}
}

func (c *cache) clear() {
	clear(c.entries)
}

func (c *cache) get(key [sha1.Size]byte) (cached, bool) {
	e, ok := c.entries[key]
	return e, ok
}

func (c *cache) put(key [sha1.Size]byte, pixels []uint8, col vic.Collisions) {
	if len(c.entries) >= cacheLimit {
		c.clear()
	}
	p := make([]uint8, len(pixels))
	copy(p, pixels)
	c.entries[key] = cached{pixels: p, collisions: col}
}

func appendAddress(b []byte, a banks.Address) []byte {
	return append(b, byte(a.Source), byte(a.Offset>>8), byte(a.Offset))
}

func appendState(b []byte, s *changes.State) []byte {
	b = append(b, byte(s.Mode), s.Border)
	b = append(b, s.Background[:]...)
	b = append(b, s.IdleBackground, s.IdleData, s.XScroll, boolByte(s.CSEL))
	b = appendAddress(b, s.Screen)
	b = appendAddress(b, s.Char)
	b = appendAddress(b, s.Bitmap[0])
	b = appendAddress(b, s.Bitmap[1])
	b = appendAddress(b, s.Color)
	return b
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// digest of everything that affects the composition of the line. the
// graphics data must have been fetched.
func (ras *raster) digest(l *vic.Line) [sha1.Size]byte {
	b := ras.line.key[:0]

	b = appendState(b, &l.Start)
	for _, c := range l.Changes {
		b = append(b, byte(c.Column), byte(c.Target), byte(c.Value>>8), byte(c.Value))
		b = appendAddress(b, c.Addr)
	}
	b = append(b, 0xff)

	b = append(b, l.Matrix[:]...)
	b = append(b, l.Color[:]...)
	b = append(b, ras.line.data[:]...)
	b = append(b, byte(l.VC>>8), byte(l.VC), boolByte(l.Idle), boolByte(l.Border))

	for _, s := range l.Sprites {
		if !s.Enabled {
			b = append(b, 0)
			continue
		}
		b = append(b, 1, byte(s.X>>8), byte(s.X), s.Color,
			boolByte(s.Multicolor), boolByte(s.XExpand), boolByte(s.Behind))
		b = append(b, s.Data[:]...)
	}
	b = append(b, l.SpriteMulticolor[:]...)

	b = append(b, byte(l.Cursor>>8), byte(l.Cursor), boolByte(l.Flash), boolByte(l.Reverse))

	ras.line.key = b
	return sha1.Sum(b)
}
