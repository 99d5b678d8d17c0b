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

package prefs

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jetsetilly/raster8/curated"
)

// Sentinel errors for the Group type.
const (
	DuplicateKey = "prefs: duplicate key (%s)"
	UnknownKey   = "prefs: unknown key (%s)"
	MalformedRow = "prefs: malformed row (%s)"
)

// separator between key and value in a serialised group. the same separator
// is used by the command line stack.
const separator = "::"

// Group collates a number of preference values under a unique key. Values
// can be set by key, serialised and restored.
type Group struct {
	entries map[string]pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]pref),
	}
}

// Add a preference value to the group. If the current command line group
// holds a value for the key then it is set immediately.
func (g *Group) Add(key string, p pref) error {
	if _, ok := g.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	g.entries[key] = p

	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}

	return nil
}

func (g *Group) keys() []string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Set the value of the preference with the specified key.
func (g *Group) Set(key string, v Value) error {
	p, ok := g.entries[key]
	if !ok {
		return curated.Errorf(UnknownKey, key)
	}
	return p.Set(v)
}

// Get the value of the preference with the specified key.
func (g *Group) Get(key string) (Value, error) {
	p, ok := g.entries[key]
	if !ok {
		return nil, curated.Errorf(UnknownKey, key)
	}
	return p.Get(), nil
}

// Reset all values in the group to their zero values.
func (g *Group) Reset() error {
	for _, k := range g.keys() {
		if err := g.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) String() string {
	s := strings.Builder{}
	for _, k := range g.keys() {
		s.WriteString(fmt.Sprintf("%s %s %s\n", k, separator, g.entries[k]))
	}
	return s.String()
}

// Save writes every value in the group, one per line and sorted by key.
func (g *Group) Save(w io.Writer) error {
	_, err := io.WriteString(w, g.String())
	return err
}

// Load values previously written with Save(). Keys that are not in the group
// are ignored so that values can be shared between groups.
func (g *Group) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, separator)
		if !ok {
			return curated.Errorf(MalformedRow, line)
		}

		p, ok := g.entries[strings.TrimSpace(key)]
		if !ok {
			continue
		}
		if err := p.Set(strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
