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

package dmi

import (
	"github.com/jetsetilly/dmibridge/assert"
	"github.com/jetsetilly/dmibridge/bridge"
	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/dtm"
	"github.com/jetsetilly/dmibridge/fesvr"
	"github.com/jetsetilly/dmibridge/loadmem"
	"github.com/jetsetilly/dmibridge/logger"
)

// Config is the construction time configuration of a Bridge.
type Config struct {
	// instance number of the bridge. selects the +progN= token
	Index int

	// the simulation's command line tokens
	Args []string

	// whether the target has memory and the offset of the target memory in
	// the host address space
	HasMem     bool
	HostOffset uint64

	// creates the engine. if nil fesvr.New is used
	Engine dtm.Ctor

	// log every request and response
	Verbose bool
}

// Bridge is the host side driver for the debug module interface bridge.
type Bridge struct {
	regs  bridge.Registers
	mem   loadmem.Widget
	addrs AddressMap

	index      int
	stepSize   uint32
	tokens     []string
	hasMem     bool
	hostOffset uint64
	verbose    bool

	newEngine dtm.Ctor

	// engine is nil until Init() is called. the bridge is bound to the
	// goroutine that called Init()
	engine   dtm.Engine
	affinity assert.Affinity

	writeBuf [dtm.MaxTransfer]byte
}

// NewBridge is the preferred method of initialisation for the Bridge type.
// The memory widget can be nil if the configuration says the target has no
// memory.
//
// The engine is not created until Init() is called.
func NewBridge(regs bridge.Registers, mem loadmem.Widget, addrs AddressMap, cfg Config) (*Bridge, error) {
	err := addrs.Validate()
	if err != nil {
		return nil, err
	}

	if cfg.HasMem {
		if mem == nil {
			return nil, curated.Errorf(InvalidMemory, "target has memory but there is no memory widget")
		}
		if mem.MaxChunkWords() <= 0 {
			return nil, curated.Errorf(InvalidMemory, "memory widget has an empty chunk")
		}
	}

	args := ParseArgs(cfg.Index, cfg.Args)

	b := &Bridge{
		regs:       regs,
		mem:        mem,
		addrs:      addrs,
		index:      cfg.Index,
		stepSize:   args.StepSize,
		tokens:     args.Tokens,
		hasMem:     cfg.HasMem,
		hostOffset: cfg.HostOffset,
		verbose:    cfg.Verbose,
		newEngine:  cfg.Engine,
	}

	if b.newEngine == nil {
		b.newEngine = fesvr.New
	}

	return b, nil
}

// StepSize returns the number of target cycles advanced by each go pulse.
func (b *Bridge) StepSize() uint32 {
	return b.stepSize
}

// Tokens returns a copy of the token list that is given to the engine.
func (b *Bridge) Tokens() []string {
	return append([]string(nil), b.tokens...)
}

// AllowLogging implements the logger.Permission interface.
func (b *Bridge) AllowLogging() bool {
	return b.verbose
}

// Init creates the engine, writes the step budget and pulses the start
// register. The engine is bound to the calling goroutine, which must be the
// goroutine that calls Tick().
//
// Calling Init() more than once has no further effect.
func (b *Bridge) Init() error {
	if b.engine != nil {
		b.checkAffinity()
		return nil
	}

	engine, err := b.newEngine(b.Tokens(), b.hasMem)
	if err != nil {
		return curated.Errorf(EngineFailed, err)
	}

	b.engine = engine
	b.affinity.Bind()

	logger.Logf(logger.Allow, "dmi", "bridge %d: step size %d", b.index, b.stepSize)

	b.regs.Write(b.addrs.StepSize, b.stepSize)
	b.pulseGo()

	return nil
}

func (b *Bridge) checkAffinity() {
	if id, ok := b.affinity.Check(); !ok {
		panic(curated.Errorf(AffinityViolation, b.affinity.Owner(), id))
	}
}

// advance the target another step budget.
func (b *Bridge) pulseGo() {
	b.regs.Write(b.addrs.Start, 1)
}

// Tick implements the bridge.Driver interface. If Init() has not been called
// then it is called now.
func (b *Bridge) Tick() {
	if b.engine == nil {
		err := b.Init()
		if err != nil {
			panic(err)
		}
	}

	b.checkAffinity()

	// the target has not finished the previous step budget
	if b.regs.Read(b.addrs.Done) == 0 {
		return
	}

	resp, respValid := b.recvResponse()
	b.engine.Tick(b.regs.Read(b.addrs.InReady) != 0, respValid, resp)

	if b.engine.HasLoadmemRequests() {
		b.bypass()
	}

	if !b.Terminate() {
		b.sendRequest()
		b.pulseGo()
	}
}

// Terminate implements the bridge.Driver interface.
func (b *Bridge) Terminate() bool {
	if b.engine == nil {
		return false
	}
	return b.engine.Done()
}

// ExitCode implements the bridge.Driver interface. The value is only
// meaningful once Terminate() returns true.
func (b *Bridge) ExitCode() int {
	if b.engine == nil {
		return 0
	}
	return b.engine.ExitCode()
}

// Close implements the bridge.Driver interface.
func (b *Bridge) Close() error {
	if b.engine == nil {
		return nil
	}

	var err error
	if c, ok := b.engine.(dtm.Closer); ok {
		err = c.Close()
	}
	b.engine = nil

	return err
}

func newDriver(platform bridge.Platform, params bridge.Params) (bridge.Driver, error) {
	b, err := NewBridge(platform.Registers, platform.Memory, NewAddressMap(params.Base), Config{
		Index:      params.Index,
		Args:       platform.Args,
		HasMem:     params.HasMem,
		HostOffset: params.HostOffset,
		Verbose:    params.Verbose,
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

var _ = bridge.Register(bridge.KindDMI, newDriver)
