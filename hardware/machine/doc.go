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

// Package machine is the reference machine for the video chip. It wires the
// chip to memory, a processor stand-in and the reference renderer.
//
// The processor stand-in executes no instructions. The machine advances the
// processor clock, honouring the cycles stolen by the chip, and register
// accesses are made with Store() and Load(). Store() models an instruction
// whose final cycle writes to the chip, which is the information the chip
// needs to decide how many cycles a bad line steals from the processor.
//
// Machines of every supported model can be created with NewMachine(). The
// model decides the video chip variant, the size of memory and the
// character ROM overlay seen by the chip.
package machine
