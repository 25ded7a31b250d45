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

package performance

import (
	"fmt"
	"time"
)

// Rate is the speed of a completed simulation run.
type Rate struct {
	Steps    int
	Cycles   uint64
	Duration time.Duration
}

// StepsPerSecond returns zero if the duration is zero.
func (r Rate) StepsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Steps) / r.Duration.Seconds()
}

// CyclesPerSecond returns zero if the duration is zero.
func (r Rate) CyclesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Cycles) / r.Duration.Seconds()
}

func (r Rate) String() string {
	return fmt.Sprintf("%d steps (%d cycles) in %.2f seconds: %.2f steps/s %.2f MHz",
		r.Steps, r.Cycles, r.Duration.Seconds(), r.StepsPerSecond(), r.CyclesPerSecond()/1e6)
}
