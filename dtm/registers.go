// This file is part of dmibridge.
//
// dmibridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dmibridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dmibridge.  If not, see <https://www.gnu.org/licenses/>.

package dtm

// Debug module register addresses, as seen through the debug module
// interface. Only the registers used by the engine and the simulated target
// are listed.
const (
	Data0     uint32 = 0x04
	Data1     uint32 = 0x05
	DMControl uint32 = 0x10
	DMStatus  uint32 = 0x11
)

// Fields in the dmcontrol register.
const (
	DMControlDMActive  uint32 = 1 << 0
	DMControlResumeReq uint32 = 1 << 30
	DMControlHaltReq   uint32 = 1 << 31
)

// Fields in the dmstatus register.
const (
	DMStatusVersion    uint32 = 0x2
	DMStatusAnyHalted  uint32 = 1 << 8
	DMStatusAllHalted  uint32 = 1 << 9
	DMStatusAnyRunning uint32 = 1 << 10
	DMStatusAllRunning uint32 = 1 << 11
)
