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

// Package timing defines the geometry of every timing profile supported by
// the video chip variants. A Profile is immutable and is selected by variant
// and television standard with NewProfile().
//
// All cycle values in a profile are relative to the start of a raster line.
// Column values are measured in character cells of eight pixels.
package timing

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/clocks"
)

// Sentinel error returned when a profile cannot be found.
const UnknownProfile = "timing: unknown profile (%s)"

// Variant is the family of video chip.
type Variant int

// List of valid Variant values.
const (
	VICII Variant = iota
	TED
)

func (v Variant) String() string {
	switch v {
	case VICII:
		return "VIC-II"
	case TED:
		return "TED"
	}
	return fmt.Sprintf("unknown variant (%d)", int(v))
}

// Standard is the television standard of a profile.
type Standard int

// List of valid Standard values. Not every standard is available for every
// variant.
const (
	PAL Standard = iota
	NTSC
	NTSCOld
	PALN
)

func (s Standard) String() string {
	switch s {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	case NTSCOld:
		return "NTSC-OLD"
	case PALN:
		return "PAL-N"
	}
	return fmt.Sprintf("unknown standard (%d)", int(s))
}

// ParseStandard converts a name to a Standard value. The comparison is case
// insensitive.
func ParseStandard(s string) (Standard, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAL":
		return PAL, nil
	case "NTSC":
		return NTSC, nil
	case "NTSC-OLD", "NTSCOLD":
		return NTSCOld, nil
	case "PAL-N", "PALN":
		return PALN, nil
	}
	return PAL, curated.Errorf(UnknownProfile, s)
}

// Profile is the timing and geometry of a video chip variant under a
// television standard.
type Profile struct {
	Variant  Variant
	Standard Standard

	// processor clock in Hz
	Clock int

	LinesPerFrame  int
	CyclesPerLine  int
	CyclesPerFrame int

	// range of raster lines on which a bad line can occur
	FirstDMALine int
	LastDMALine  int

	// first and last lines of the display window for the 25 and 24 row
	// settings. the vertical border is closed outside of these lines
	FirstLine25 int
	LastLine25  int
	FirstLine24 int
	LastLine24  int

	// cycle of the line on which the bad line fetch occurs
	FetchCycle int

	// cycle of the line on which the line is handed to the renderer and the
	// raster line advances
	DrawCycle int

	// cycle of the line at which the first visible column is being drawn
	FirstVisibleCycle int

	// number of visible columns. includes the side borders
	VisibleColumns int

	// first visible column of the text area
	TextColumn int

	// number of bytes fetched by a bad line and the number of cycles a bad
	// line fetch steals before the three cycle bus handover is added
	TextColumns int

	// range of lines that are sent to the renderer
	FirstDisplayedLine int
	LastDisplayedLine  int

	// cycles between the start of a line and the raster compare matching
	RasterIRQDelay int

	// cycles between the IRQ line being raised and the processor noticing
	InterruptDelay int
}

func (p *Profile) String() string {
	return fmt.Sprintf("%s %s", p.Variant, p.Standard)
}

// ID returns the name of the profile's standard. The value is accepted by
// ParseStandard().
func (p *Profile) ID() string {
	return p.Standard.String()
}

func vicii(std Standard, clock int, lines int, cpl int, firstDisplayed int, lastDisplayed int) Profile {
	return Profile{
		Variant:            VICII,
		Standard:           std,
		Clock:              clock,
		LinesPerFrame:      lines,
		CyclesPerLine:      cpl,
		CyclesPerFrame:     lines * cpl,
		FirstDMALine:       0x30,
		LastDMALine:        0xf7,
		FirstLine25:        0x33,
		LastLine25:         0xfa,
		FirstLine24:        0x37,
		LastLine24:         0xf6,
		FetchCycle:         11,
		DrawCycle:          cpl - 1,
		FirstVisibleCycle:  12,
		VisibleColumns:     48,
		TextColumn:         4,
		TextColumns:        40,
		FirstDisplayedLine: firstDisplayed,
		LastDisplayedLine:  lastDisplayed,
		RasterIRQDelay:     2,
		InterruptDelay:     2,
	}
}

func ted(std Standard, clock int, lines int, lastDisplayed int) Profile {
	return Profile{
		Variant:            TED,
		Standard:           std,
		Clock:              clock,
		LinesPerFrame:      lines,
		CyclesPerLine:      57,
		CyclesPerFrame:     lines * 57,
		FirstDMALine:       0x00,
		LastDMALine:        0xcb,
		FirstLine25:        0x04,
		LastLine25:         0xcb,
		FirstLine24:        0x08,
		LastLine24:         0xc7,
		FetchCycle:         2,
		DrawCycle:          56,
		FirstVisibleCycle:  4,
		VisibleColumns:     48,
		TextColumn:         4,
		TextColumns:        40,
		FirstDisplayedLine: 0,
		LastDisplayedLine:  lastDisplayed,
		RasterIRQDelay:     3,
		InterruptDelay:     2,
	}
}

var profiles = map[Variant]map[Standard]Profile{
	VICII: {
		PAL:     vicii(PAL, clocks.C64_PAL, 312, 63, 16, 287),
		NTSC:    vicii(NTSC, clocks.C64_NTSC, 263, 65, 28, 258),
		NTSCOld: vicii(NTSCOld, clocks.C64_NTSC_OLD, 262, 64, 28, 258),
		PALN:    vicii(PALN, clocks.C64_PAL_N, 312, 65, 16, 287),
	},
	TED: {
		PAL:  ted(PAL, clocks.TED_PAL, 312, 249),
		NTSC: ted(NTSC, clocks.TED_NTSC, 262, 234),
	},
}

// NewProfile returns the profile for the variant and standard. The returned
// value is a copy and can be retained indefinitely.
func NewProfile(v Variant, std Standard) (*Profile, error) {
	p, ok := profiles[v][std]
	if !ok {
		return nil, curated.Errorf(UnknownProfile, fmt.Sprintf("%s %s", v, std))
	}
	return &p, nil
}

// Standards returns the list of standards available for the variant.
func Standards(v Variant) []Standard {
	var l []Standard
	for _, s := range []Standard{PAL, NTSC, NTSCOld, PALN} {
		if _, ok := profiles[v][s]; ok {
			l = append(l, s)
		}
	}
	return l
}

// InDMAWindow returns true if a bad line can occur on the line.
func (p *Profile) InDMAWindow(line int) bool {
	return line >= p.FirstDMALine && line <= p.LastDMALine
}

// Displayed returns true if the line is sent to the renderer.
func (p *Profile) Displayed(line int) bool {
	return line >= p.FirstDisplayedLine && line <= p.LastDisplayedLine
}

// DisplayedLines returns the number of lines sent to the renderer every
// frame.
func (p *Profile) DisplayedLines() int {
	return p.LastDisplayedLine - p.FirstDisplayedLine + 1
}

// DisplayWindow returns the first and last line of the display window for
// the 25 row (rows25 true) or 24 row setting.
func (p *Profile) DisplayWindow(rows25 bool) (int, int) {
	if rows25 {
		return p.FirstLine25, p.LastLine25
	}
	return p.FirstLine24, p.LastLine24
}

// Column maps a cycle, relative to the start of the current line, to the
// column being drawn. A negative delta is a cycle of the previous line after
// the line has been handed to the renderer and maps to column zero. Cycles
// after the last visible column are for the next line and nextLine is true.
func (p *Profile) Column(delta int) (column int, nextLine bool) {
	if delta < 0 {
		return 0, false
	}
	column = delta - p.FirstVisibleCycle
	if column < 0 {
		return 0, false
	}
	if column >= p.VisibleColumns {
		return 0, true
	}
	return column, false
}
