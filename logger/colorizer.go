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

import (
	"io"
	"strings"
)

const (
	penTag    = "\033[2m"
	penNormal = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. The tag part of
// each entry is dimmed so that the detail stands out.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	for _, s := range strings.SplitAfter(string(p), "\n") {
		if s == "" {
			continue
		}

		tag, detail, ok := strings.Cut(s, ": ")
		if ok {
			s = penTag + tag + ":" + penNormal + " " + detail
		}

		_, err = io.WriteString(c.out, s)
		if err != nil {
			return n, err
		}
	}

	// report the length of p rather than what was written. the pen codes are
	// not the caller's concern
	return len(p), nil
}
