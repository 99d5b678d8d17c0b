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

//go:build !assertions

package assert

// Owner does nothing unless the assertions build tag is present.
type Owner struct{}

// Check does nothing unless the assertions build tag is present.
func (o *Owner) Check() {}

// Release does nothing unless the assertions build tag is present.
func (o *Owner) Release() {}
