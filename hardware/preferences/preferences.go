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

// Package preferences collates the preference values that control the video
// chip and the reference renderer. Values are prefs types and so can be set
// from the command line with the prefs package's command line stack.
//
// Changing a value never acts on the emulation directly. The hook functions
// installed by the owner of a value only recompute geometry or request a
// timing profile swap, which is applied at the next frame boundary.
package preferences

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/raster8/prefs"
)

// Keys used to identify values in the preferences group and on the command
// line.
const (
	KeyProfile        = "vic.profile"
	KeyDisplayCaching = "render.cache"
	KeyDoubleSize     = "render.doublesize"
	KeyDoubleScan     = "render.doublescan"
	KeyFrameSkip      = "render.frameskip"
)

// Preferences for the video chip and renderer.
type Preferences struct {
	group *prefs.Group

	// timing profile. one of the standard names accepted by
	// timing.ParseStandard(). the empty string selects the default for the
	// machine model
	Profile prefs.String

	// renderer reuses composed lines when the line state has not changed
	DisplayCaching prefs.Bool

	// output images are doubled horizontally
	DoubleSize prefs.Bool

	// output images are doubled vertically
	DoubleScan prefs.Bool

	// number of frames to skip for every drawn frame
	FrameSkip prefs.Int
}

func (p *Preferences) String() string {
	return p.group.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}

	p.SetDefaults()

	p.FrameSkip.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("preferences: frame skip cannot be negative (%d)", v.(int))
		}
		return nil
	})

	p.Profile.SetHookPre(func(v prefs.Value) error {
		if strings.ContainsAny(v.(string), " \t") {
			return fmt.Errorf("preferences: profile name contains whitespace (%s)", v.(string))
		}
		return nil
	})

	for _, e := range []struct {
		key string
		val interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{KeyProfile, &p.Profile},
		{KeyDisplayCaching, &p.DisplayCaching},
		{KeyDoubleSize, &p.DoubleSize},
		{KeyDoubleScan, &p.DoubleScan},
		{KeyFrameSkip, &p.FrameSkip},
	} {
		if err := p.group.Add(e.key, e.val); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Profile.Set("")
	p.DisplayCaching.Set(true)
	p.DoubleSize.Set(false)
	p.DoubleScan.Set(false)
	p.FrameSkip.Set(0)
}

// Set a preference by key.
func (p *Preferences) Set(key string, v prefs.Value) error {
	return p.group.Set(key, v)
}

// Load preferences from io.Reader.
func (p *Preferences) Load(r io.Reader) error {
	return p.group.Load(r)
}

// Save preferences to io.Writer.
func (p *Preferences) Save(w io.Writer) error {
	return p.group.Save(w)
}
