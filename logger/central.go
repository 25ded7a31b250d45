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

package logger

import "io"

// Permission is implemented by types that decide for themselves whether their
// log entries are wanted. A bridge driver for example only logs individual
// debug requests when it has been configured to be verbose.
type Permission interface {
	AllowLogging() bool
}

// Flag is a Permission that never changes.
type Flag bool

// AllowLogging implements the Permission interface.
func (f Flag) AllowLogging() bool {
	return bool(f)
}

// Allow is the Permission for entries that should always be logged.
const Allow = Flag(true)

// the log used by the package level functions. entries older than the most
// recent 256 are lost
var central = NewLogger(256)

// Log adds an entry to the central log.
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(perm Permission, tag string, detail string, args ...any) {
	central.Logf(perm, tag, detail, args...)
}

// SetEcho copies new entries in the central log to output. A nil output stops
// the copying.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}
