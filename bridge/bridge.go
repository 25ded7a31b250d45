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

// Package bridge defines the host side driver concept. A driver services one
// hardware bridge in the simulated target through a set of memory mapped
// registers. The simulation calls Tick() on every driver once per host step.
//
// Driver types register a constructor for their Kind during program
// initialisation, usually with a package level variable:
//
//	var _ = bridge.Register(bridge.KindDMI, newDriver)
//
// The registry is sealed the first time New() is called. Registrations after
// that point are refused.
package bridge

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/loadmem"
)

// Kind identifies the type of a bridge driver.
type Kind int

// List of valid Kind values.
const (
	KindDMI Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindDMI:
		return "DMI"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Registers is the register access capability provided by the host
// simulation. Every access is synchronous.
type Registers interface {
	Read(addr uint64) uint32
	Write(addr uint64, data uint32)
}

// Driver is the interface to a host side bridge driver.
type Driver interface {
	// Init is called once before the first call to Tick() and on the same
	// goroutine that will call Tick().
	Init() error

	// Tick is called once per host step. It must not block.
	Tick()

	// Terminate returns true if the driver wants the simulation to end.
	Terminate() bool

	// ExitCode is the exit status of the driver. Only valid once Terminate()
	// has returned true.
	ExitCode() int

	// Close releases any resources held by the driver.
	Close() error
}

// Platform is what the host simulation provides to every driver.
type Platform struct {
	Registers Registers

	// memory widget. may be nil if the target has no memory
	Memory loadmem.Widget

	// command line tokens for the entire simulation. drivers select the
	// tokens that are meant for them
	Args []string
}

// Params are the per-instance parameters of a driver.
type Params struct {
	// instance number among drivers of the same kind
	Index int

	// base address of the driver's registers
	Base uint64

	// whether the target has memory and the offset of the target memory in
	// the host address space
	HasMem     bool
	HostOffset uint64

	// log detailed information about the driver's activity
	Verbose bool
}

// Ctor creates a new driver for the platform.
type Ctor func(Platform, Params) (Driver, error)

// Sentinel patterns for registry errors.
const (
	UnknownKind = "bridge: no driver registered for %v"
)

var registry = struct {
	crit   sync.Mutex
	ctors  map[Kind]Ctor
	sealed bool
}{
	ctors: make(map[Kind]Ctor),
}

// Register a constructor for a driver kind. Returns false if the kind has
// already been registered or if the registry has been sealed.
func Register(kind Kind, ctor Ctor) bool {
	registry.crit.Lock()
	defer registry.crit.Unlock()

	if registry.sealed {
		return false
	}
	if _, ok := registry.ctors[kind]; ok {
		return false
	}
	registry.ctors[kind] = ctor
	return true
}

// New creates a driver of the specified kind. The first call to New() seals
// the registry.
func New(kind Kind, platform Platform, params Params) (Driver, error) {
	registry.crit.Lock()
	registry.sealed = true
	ctor, ok := registry.ctors[kind]
	registry.crit.Unlock()

	if !ok {
		return nil, curated.Errorf(UnknownKind, kind)
	}
	return ctor(platform, params)
}
