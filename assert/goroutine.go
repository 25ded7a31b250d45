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

// Package assert is used to check that code is being run in the execution
// context it expects.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Affinity records the goroutine that an object was bound to. The zero value
// is unbound.
type Affinity struct {
	id uint64
}

// Bind the affinity to the calling goroutine.
func (a *Affinity) Bind() {
	a.id = GetGoRoutineID()
}

// Bound returns true if Bind() has been called.
func (a *Affinity) Bound() bool {
	return a.id != 0
}

// Owner returns the ID of the goroutine the affinity was bound to. Zero if
// the affinity is unbound.
func (a *Affinity) Owner() uint64 {
	return a.id
}

// Check returns the ID of the calling goroutine and whether it is the
// goroutine the affinity was bound to. An unbound affinity never matches.
func (a *Affinity) Check() (uint64, bool) {
	id := GetGoRoutineID()
	return id, a.id != 0 && id == a.id
}
