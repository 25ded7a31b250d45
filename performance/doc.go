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

// Package performance measures the speed of a simulation run and can
// optionally record profiling information while it runs.
//
// Profiles are written to files named after the tag given to RunProfiler()
// with a suffix for the type of profile. For example, a CPU profile with the
// tag "dmibridge" is written to "dmibridge_cpu.profile".
package performance
