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

package timing_test

import (
	"testing"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/vic/timing"
	"github.com/jetsetilly/raster8/test"
)

func TestProfiles(t *testing.T) {
	for _, v := range []timing.Variant{timing.VICII, timing.TED} {
		for _, s := range timing.Standards(v) {
			p, err := timing.NewProfile(v, s)
			test.DemandSuccess(t, err, p)
			test.ExpectEquality(t, p.CyclesPerFrame, p.LinesPerFrame*p.CyclesPerLine, p)
			test.ExpectEquality(t, p.DrawCycle < p.CyclesPerLine, true, p)
			test.ExpectEquality(t, p.FetchCycle < p.FirstVisibleCycle, true, p)
			test.ExpectEquality(t, p.FirstVisibleCycle+p.VisibleColumns <= p.DrawCycle, true, p)
			test.ExpectEquality(t, p.LastDMALine < p.LinesPerFrame, true, p)
			test.ExpectEquality(t, p.LastDisplayedLine < p.LinesPerFrame, true, p)
			test.ExpectEquality(t, p.TextColumn+p.TextColumns <= p.VisibleColumns, true, p)

			// the display window is inside the DMA window
			first, last := p.DisplayWindow(true)
			test.ExpectEquality(t, p.InDMAWindow(first) && p.InDMAWindow(last), true, p)
			first, last = p.DisplayWindow(false)
			test.ExpectEquality(t, p.InDMAWindow(first) && p.InDMAWindow(last), true, p)
		}
	}
}

func TestGeometry(t *testing.T) {
	p, err := timing.NewProfile(timing.VICII, timing.PAL)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.LinesPerFrame, 312)
	test.ExpectEquality(t, p.CyclesPerLine, 63)
	test.ExpectEquality(t, p.CyclesPerFrame, 19656)

	p, err = timing.NewProfile(timing.VICII, timing.NTSC)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.CyclesPerFrame, 263*65)

	p, err = timing.NewProfile(timing.VICII, timing.NTSCOld)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.CyclesPerFrame, 262*64)

	p, err = timing.NewProfile(timing.TED, timing.PAL)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.CyclesPerLine, 57)
	test.ExpectEquality(t, p.FirstDMALine, 0)
}

func TestUnknownProfile(t *testing.T) {
	_, err := timing.NewProfile(timing.TED, timing.PALN)
	test.ExpectEquality(t, curated.Is(err, timing.UnknownProfile), true)

	_, err = timing.ParseStandard("SECAM")
	test.ExpectEquality(t, curated.Is(err, timing.UnknownProfile), true)

	s, err := timing.ParseStandard("pal-n")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, timing.PALN)
}

func TestColumn(t *testing.T) {
	p, err := timing.NewProfile(timing.VICII, timing.PAL)
	test.DemandSuccess(t, err)

	type result struct {
		column int
		next   bool
	}
	col := func(delta int) result {
		c, n := p.Column(delta)
		return result{c, n}
	}

	test.ExpectEquality(t, col(-1), result{0, false})
	test.ExpectEquality(t, col(0), result{0, false})
	test.ExpectEquality(t, col(p.FirstVisibleCycle), result{0, false})
	test.ExpectEquality(t, col(p.FirstVisibleCycle+p.TextColumn), result{4, false})
	test.ExpectEquality(t, col(p.FirstVisibleCycle+p.VisibleColumns-1), result{47, false})
	test.ExpectEquality(t, col(p.FirstVisibleCycle+p.VisibleColumns), result{0, true})
	test.ExpectEquality(t, col(p.DrawCycle), result{0, true})
}
