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

// Package dmi is the host side driver for a debug module interface bridge.
// It moves debug requests and responses between the bridge's registers and a
// debug transport engine (see the dtm package), and services the engine's
// loadmem requests with the memory widget.
//
// The target runs in batches. The driver writes the number of cycles in a
// batch, the step size, once when it is initialised. Each write to the start
// register begins a new batch and the done register reads non-zero when the
// batch is complete. Tick() does nothing until the done register is set.
// When it is set Tick() will:
//
//  1. take a response from the target, if there is one
//  2. advance the engine
//  3. service any loadmem requests
//  4. forward the engine's request, if there is one and the target is ready
//  5. start the next batch
//
// Steps 4 and 5 are skipped once the engine has terminated.
//
// The engine is created by Init() and it is bound to the goroutine that
// called Init(). Calling Tick() from any other goroutine is a fatal error.
// Other fatal errors are:
//
//   - a loadmem read whose size is not a multiple of the word width
//   - a loadmem write larger than dtm.MaxTransfer bytes
//   - any loadmem request when the target has no memory
//
// Fatal errors are programming or configuration errors in the simulation
// harness. They are reported by panicking with a curated error, the pattern
// of which is one of the constants in this package.
package dmi
