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

package test_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/raster8/test"
)

func TestExpect(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test"))

	var err error
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
}

func TestEquality(t *testing.T) {
	test.ExpectEquality(t, 63, 60+3)
	test.ExpectEquality(t, uint8(0xff), 0xf0|0x0f)
	test.ExpectInequality(t, 312, 263)
	test.ExpectApproximate(t, 50.12, 50.0, 0.01)
}

func TestCompareWriter(t *testing.T) {
	w := &test.CompareWriter{}
	w.Write([]byte("raster: "))
	w.Write([]byte("line 0"))
	test.ExpectSuccess(t, w.Compare("raster: line 0"))
	w.Clear()
	test.ExpectSuccess(t, w.Compare(""))
}
