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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/instance"
	"github.com/jetsetilly/raster8/hardware/vic"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/logger"
	"github.com/jetsetilly/raster8/prefs"
)

// Sentinel errors.
const (
	NoFrame = "render: no complete frame for %s"
)

// Stats of a single raster.
type Stats struct {
	Frames  int
	Skipped int
	Lines   int

	CacheHits   int
	CacheMisses int
}

func (s Stats) String() string {
	return fmt.Sprintf("frames=%d skipped=%d lines=%d cache=%d/%d",
		s.Frames, s.Skipped, s.Lines, s.CacheHits, s.CacheHits+s.CacheMisses)
}

type raster struct {
	label   string
	mem     vic.Memory
	profile *timing.Profile
	palette []color.RGBA

	width  int
	height int

	frame int
	skip  bool
	drawn int

	// colour indexes of the frame being drawn and of the most recent
	// complete frame
	cur  []uint8
	last []uint8

	complete  bool
	lastFrame int

	// the last frame converted to colour and scaled. rebuilt when dirty
	out   *image.RGBA
	dirty bool

	line  lineBuffer
	cache *cache
	stats Stats
}

// Renderer implements the vic.Renderer interface.
type Renderer struct {
	ins *instance.Instance

	// maximum number of rasters for the machine model
	max int

	// rasters is not protected by crit. only the composed images are
	rasters []*raster

	crit sync.Mutex
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type. The max argument is the number of rasters supported by the machine
// model.
func NewRenderer(ins *instance.Instance, max int) *Renderer {
	r := &Renderer{
		ins: ins,
		max: max,
	}

	geometry := func(_ prefs.Value) error {
		r.crit.Lock()
		defer r.crit.Unlock()
		for _, ras := range r.rasters {
			ras.dirty = true
		}
		return nil
	}
	r.ins.Prefs.DoubleSize.SetHookPost(geometry)
	r.ins.Prefs.DoubleScan.SetHookPost(geometry)

	r.ins.Prefs.DisplayCaching.SetHookPost(func(_ prefs.Value) error {
		for _, ras := range r.rasters {
			ras.cache.clear()
		}
		return nil
	})

	return r
}

func (r *Renderer) raster(id int) *raster {
	if id < 0 || id >= len(r.rasters) {
		panic(fmt.Sprintf("render: raster %d has not been registered", id))
	}
	return r.rasters[id]
}

// RegisterRaster implements the vic.Renderer interface.
func (r *Renderer) RegisterRaster(label string, mem vic.Memory) int {
	if len(r.rasters) >= r.max {
		panic(fmt.Sprintf("render: cannot register %s. machine supports %d raster(s)", label, r.max))
	}

	r.rasters = append(r.rasters, &raster{
		label: label,
		mem:   mem,
		cache: newCache(),
	})

	logger.Logf(r.ins, "render", "registered raster %d for %s", len(r.rasters)-1, label)

	return len(r.rasters) - 1
}

// Resize implements the vic.Renderer interface.
func (r *Renderer) Resize(id int, p *timing.Profile) {
	ras := r.raster(id)

	r.crit.Lock()
	defer r.crit.Unlock()

	if ras.profile == nil || ras.profile.Variant != p.Variant {
		ras.palette = Palette(p.Variant)
	}
	ras.profile = p
	ras.width = p.VisibleColumns * 8
	ras.height = p.DisplayedLines()
	ras.cur = make([]uint8, ras.width*ras.height)
	ras.last = make([]uint8, ras.width*ras.height)
	ras.line.resize(ras.width)
	ras.complete = false
	ras.dirty = true
	ras.cache.clear()

	logger.Logf(r.ins, "render", "%s resized to %dx%d (%s)", ras.label, ras.width, ras.height, p)
}

// NewFrame implements the vic.Renderer interface.
func (r *Renderer) NewFrame(id int, frame int, skip bool) {
	ras := r.raster(id)

	// the frame that has just finished becomes the last complete frame
	if !ras.skip && ras.drawn > 0 {
		r.crit.Lock()
		ras.cur, ras.last = ras.last, ras.cur
		ras.complete = true
		ras.lastFrame = ras.frame
		ras.dirty = true
		r.crit.Unlock()
		ras.stats.Frames++
	}

	if skip {
		ras.stats.Skipped++
	}

	ras.frame = frame
	ras.skip = skip
	ras.drawn = 0
}

// DrawLine implements the vic.Renderer interface.
func (r *Renderer) DrawLine(id int, l *vic.Line) vic.Collisions {
	ras := r.raster(id)

	y := l.Raster - ras.profile.FirstDisplayedLine
	if y < 0 || y >= ras.height {
		return vic.Collisions{}
	}

	row := ras.cur[y*ras.width : (y+1)*ras.width]
	ras.drawn++
	ras.stats.Lines++

	ras.fetch(l)

	if r.ins.Prefs.DisplayCaching.Get().(bool) {
		key := ras.digest(l)
		if c, ok := ras.cache.get(key); ok {
			ras.stats.CacheHits++
			copy(row, c.pixels)
			return c.collisions
		}
		ras.stats.CacheMisses++
		col := ras.compose(l, row)
		ras.cache.put(key, row, col)
		return col
	}

	return ras.compose(l, row)
}

// Stats returns the statistics of the raster.
func (r *Renderer) Stats(id int) Stats {
	return r.raster(id).stats
}

// Label returns the label of the raster.
func (r *Renderer) Label(id int) string {
	return r.raster(id).label
}

// Rasters returns the number of registered rasters.
func (r *Renderer) Rasters() int {
	return len(r.rasters)
}

// Index returns the colour index of a pixel in the last complete frame. The
// coordinates are in the native resolution of the raster.
func (r *Renderer) Index(id int, x int, y int) uint8 {
	ras := r.raster(id)
	r.crit.Lock()
	defer r.crit.Unlock()
	if x < 0 || x >= ras.width || y < 0 || y >= ras.height {
		return 0
	}
	return ras.last[y*ras.width+x]
}

// Image returns the last complete frame of the raster, scaled according to
// the double size and double scan preferences. Returns nil if no frame has
// been completed.
//
// The returned image must not be retained after the next call to Image().
func (r *Renderer) Image(id int) image.Image {
	ras := r.raster(id)

	r.crit.Lock()
	defer r.crit.Unlock()

	if !ras.complete {
		return nil
	}

	if ras.dirty || ras.out == nil {
		ras.out = ras.convert(r.ins.Prefs.DoubleSize.Get().(bool), r.ins.Prefs.DoubleScan.Get().(bool))
		ras.dirty = false
	}

	return ras.out
}

// SavePNG writes the last complete frame of the raster as a PNG image.
func (r *Renderer) SavePNG(id int, w io.Writer) error {
	img := r.Image(id)
	if img == nil {
		return curated.Errorf(NoFrame, r.raster(id).label)
	}
	return png.Encode(w, img)
}
