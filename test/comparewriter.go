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

package test

import "bytes"

// CompareWriter collects everything written to it so that it can be checked
// against the output a test expects.
type CompareWriter struct {
	bytes.Buffer
}

// Compare returns true if the collected output is exactly s.
func (w *CompareWriter) Compare(s string) bool {
	return w.String() == s
}

// Clear discards the collected output.
func (w *CompareWriter) Clear() {
	w.Reset()
}
