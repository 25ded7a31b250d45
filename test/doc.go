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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a failure with t.Errorf() and allow the test
// to continue. The Demand functions report in the same way and then end the
// test with t.FailNow().
//
// How the success/failure functions handle nil is not obvious. The nil value
// is considered a success because of how errors usually work (nil to indicate
// no error).
//
// ExpectPanic() runs a function and reports whether it panicked. The
// recovered value is returned so that it can be examined further. Fatal
// conditions in the bridge are reported by panicking with a curated error.
package test
