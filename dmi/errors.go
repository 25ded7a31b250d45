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

package dmi

// Patterns for curated errors. The first four are fatal and are used as
// panic values. The harness is misconfigured if any of them occur.
const (
	ReadSizeMisaligned = "dmi: loadmem read size (%d) is not a multiple of the word width (%d)"
	WriteSizeExceeded  = "dmi: loadmem write size (%d) exceeds the maximum transfer (%d)"
	NoMemory           = "dmi: loadmem %s requested on a target without memory"
	AffinityViolation  = "dmi: bridge bound to goroutine %d but driven from goroutine %d"

	InvalidAddressMap = "dmi: invalid address map: %s"
	InvalidMemory     = "dmi: invalid memory widget: %s"
	EngineFailed      = "dmi: cannot create engine: %v"
)
