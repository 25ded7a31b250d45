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

// Package simulation is the host side of a cycle stepped simulation. It
// advances the target one step at a time and ticks every bridge driver
// after each step.
//
// Everything happens on the goroutine that calls Run(). The drivers are
// initialised on that goroutine so any goroutine affinity they have is
// satisfied.
package simulation

import (
	"github.com/jetsetilly/dmibridge/bridge"
	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/logger"
)

// Target is anything that can be advanced by one simulation step.
type Target interface {
	Step()
}

// Patterns for curated errors.
const (
	NoDrivers      = "simulation: no drivers"
	DriverInit     = "simulation: driver %d: %v"
	StepsExhausted = "simulation: no driver terminated after %d steps"
)

// Result is the outcome of a simulation run.
type Result struct {
	// the number of steps taken
	Steps int

	// the driver that terminated the simulation and its exit code
	Driver   int
	ExitCode int
}

// Run the simulation until one of the drivers terminates. A maxSteps value
// of zero or less means there is no limit.
//
// The drivers are closed before the function returns.
func Run(tgt Target, drivers []bridge.Driver, maxSteps int) (Result, error) {
	if len(drivers) == 0 {
		return Result{}, curated.Errorf(NoDrivers)
	}

	defer func() {
		for i, d := range drivers {
			if err := d.Close(); err != nil {
				logger.Logf(logger.Allow, "simulation", "driver %d: %v", i, err)
			}
		}
	}()

	for i, d := range drivers {
		if err := d.Init(); err != nil {
			return Result{}, curated.Errorf(DriverInit, i, err)
		}
	}

	var res Result

	for maxSteps <= 0 || res.Steps < maxSteps {
		tgt.Step()
		res.Steps++

		for i, d := range drivers {
			d.Tick()
			if d.Terminate() {
				res.Driver = i
				res.ExitCode = d.ExitCode()
				logger.Logf(logger.Allow, "simulation", "driver %d terminated after %d steps with exit code %d", i, res.Steps, res.ExitCode)
				return res, nil
			}
		}
	}

	return res, curated.Errorf(StepsExhausted, maxSteps)
}
