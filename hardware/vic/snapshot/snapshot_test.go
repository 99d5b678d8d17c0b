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

package snapshot_test

import (
	"testing"

	"github.com/jetsetilly/raster8/curated"
	"github.com/jetsetilly/raster8/hardware/vic/snapshot"
	"github.com/jetsetilly/raster8/test"
)

type payload struct {
	Line   int
	Matrix [40]uint8
}

func TestModule(t *testing.T) {
	p := payload{Line: 0x33}
	p.Matrix[39] = 0xff

	m, err := snapshot.NewModule("VIC-II", 1, 1, p)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.Check("VIC-II", 1, 1))

	var q payload
	test.ExpectSuccess(t, m.Decode(&q))
	test.ExpectEquality(t, q, p)
}

func TestVersion(t *testing.T) {
	m, err := snapshot.NewModule("TED", 1, 2, payload{})
	test.DemandSuccess(t, err)

	err = m.Check("TED", 1, 1)
	test.ExpectEquality(t, curated.Is(err, snapshot.VersionMismatch), true)

	err = m.Check("TED", 2, 0)
	test.ExpectSuccess(t, err)

	m.Major = 3
	err = m.Check("TED", 2, 0)
	test.ExpectEquality(t, curated.Is(err, snapshot.VersionMismatch), true)

	err = m.Check("VIC-II", 3, 0)
	test.ExpectEquality(t, curated.Is(err, snapshot.WrongModule), true)
}

func TestContainer(t *testing.T) {
	var c snapshot.Container

	a, _ := snapshot.NewModule("VIC-II", 1, 1, payload{Line: 1})
	b, _ := snapshot.NewModule("MACHINE", 1, 0, payload{Line: 2})
	c.Add(a)
	c.Add(b)

	// replaces the existing module of the same name
	a2, _ := snapshot.NewModule("VIC-II", 1, 1, payload{Line: 3})
	c.Add(a2)
	test.ExpectEquality(t, len(c.Modules), 2)

	data, err := c.Marshal()
	test.DemandSuccess(t, err)

	d, err := snapshot.Unmarshal(data)
	test.DemandSuccess(t, err)

	m, err := d.Find("VIC-II")
	test.DemandSuccess(t, err)

	var p payload
	test.ExpectSuccess(t, m.Decode(&p))
	test.ExpectEquality(t, p.Line, 3)

	_, err = d.Find("TED")
	test.ExpectEquality(t, curated.Is(err, snapshot.MissingModule), true)

	_, err = snapshot.Unmarshal([]byte{0x01, 0x02})
	test.ExpectFailure(t, err)
}
