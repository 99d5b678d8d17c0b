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

//go:build assertions

package assert

import "fmt"

// Owner records the goroutine that first calls Check(). Subsequent calls from
// any other goroutine cause a panic.
type Owner struct {
	id uint64
}

// Check that the current goroutine is the owner.
func (o *Owner) Check() {
	id := GetGoRoutineID()
	if o.id == 0 {
		o.id = id
		return
	}
	if o.id != id {
		panic(fmt.Sprintf("assert: goroutine %d is not the owner (%d)", id, o.id))
	}
}

// Release ownership. The next goroutine to call Check() becomes the owner.
func (o *Owner) Release() {
	o.id = 0
}
