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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/dmibridge/bridge"
	"github.com/jetsetilly/dmibridge/dmi"
	"github.com/jetsetilly/dmibridge/fesvr"
	"github.com/jetsetilly/dmibridge/loadmem"
	"github.com/jetsetilly/dmibridge/logger"
	"github.com/jetsetilly/dmibridge/modalflag"
	"github.com/jetsetilly/dmibridge/performance"
	"github.com/jetsetilly/dmibridge/simulation"
	"github.com/jetsetilly/dmibridge/statsview"
	"github.com/jetsetilly/dmibridge/target"
	"github.com/jetsetilly/dmibridge/version"
)

// default location of the bridge registers
const defaultBase = 0x10000

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "MAP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	var exitCode int

	switch md.Mode() {
	case "RUN":
		exitCode, err = run(md)

	case "MAP":
		err = addressMap(md)

	case "VERSION":
		fmt.Fprintln(md.Output, version.Version())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}

	os.Exit(exitCode)
}

func run(md *modalflag.Modes) (int, error) {
	md.NewMode()

	base := md.AddAddress("base", defaultBase, "address of the bridge registers")
	hasMem := md.AddBool("mem", true, "target has memory")
	hostOffset := md.AddAddress("hostoffset", 0, "offset of target memory in the host address space")
	chunkWords := md.AddInt("chunkwords", 8, "words in a memory fetch")
	burst := md.AddInt("burst", 64, "bytes in a memory write burst")
	cycles := md.AddInt("cycles", target.DefaultCyclesPerStep, "target cycles per simulation step")
	runCycles := md.AddInt("runcycles", target.DefaultRunCycles, "cycles the hart runs for before finishing")
	entry := md.AddAddress("entry", fesvr.DefaultEntry, "program address used by the hart")
	tohost := md.AddAddress("tohost", fesvr.DefaultToHost, "result address used by the hart")
	steps := md.AddInt("steps", 0, "maximum number of simulation steps (0 for no limit)")
	log := md.AddBool("log", false, "echo log to stdout")
	verbose := md.AddBool("verbose", false, "log every debug request and response")
	profile := md.AddString("profile", "none", "record profiles: cpu, mem, trace (comma separated)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	memvizFile := md.AddString("memviz", "", "write a graphviz dump of the target state to file")

	md.AdditionalHelp("Arguments that follow the flags are the simulation plusargs. For example:\n\n" +
		"  dmibridge run -log +fesvr-step-size=10000 \"+prog0=+loadmem-verify program.bin\"")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return 0, err
	}

	if *log {
		logger.SetEcho(echoWriter(os.Stdout))
	} else {
		logger.SetEcho(nil)
	}

	logger.Log(logger.Allow, "dmibridge", version.Version())

	if *stats {
		if !statsview.Available() {
			return 0, fmt.Errorf("stats server not available in this build")
		}
		stop := statsview.Launch(md.Output)
		defer stop()
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return 0, err
	}

	var mem *loadmem.Memory
	if *hasMem {
		mem, err = loadmem.NewMemory(*chunkWords, *burst)
		if err != nil {
			return 0, err
		}
	}

	tgt, err := target.NewTarget(target.Config{
		Base:          *base,
		CyclesPerStep: uint32(*cycles),
		RunCycles:     *runCycles,
		Entry:         *entry,
		ToHost:        *tohost,
		HostOffset:    *hostOffset,
		Mem:           mem,
	})
	if err != nil {
		return 0, err
	}

	platform := bridge.Platform{
		Registers: tgt,
		Args:      md.RemainingArgs(),
	}
	if mem != nil {
		platform.Memory = mem
	}

	d, err := bridge.New(bridge.KindDMI, platform, bridge.Params{
		Base:       *base,
		HasMem:     *hasMem,
		HostOffset: *hostOffset,
		Verbose:    *verbose,
	})
	if err != nil {
		return 0, err
	}

	var res simulation.Result
	start := time.Now()

	err = performance.RunProfiler(prof, "dmibridge", func() error {
		var err error
		res, err = simulation.Run(tgt, []bridge.Driver{d}, *steps)
		return err
	})

	logger.Log(logger.Allow, "dmibridge", performance.Rate{
		Steps:    res.Steps,
		Cycles:   tgt.Cycles,
		Duration: time.Since(start),
	})

	if *memvizFile != "" {
		if verr := dumpTarget(*memvizFile, tgt); verr != nil {
			logger.Log(logger.Allow, "dmibridge", verr)
		}
	}

	if err != nil {
		return 0, err
	}

	return res.ExitCode, nil
}

func dumpTarget(filename string, tgt *target.Target) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, tgt)

	return nil
}

func addressMap(md *modalflag.Modes) error {
	md.NewMode()

	base := md.AddAddress("base", defaultBase, "address of the bridge registers")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	for _, r := range dmi.NewAddressMap(*base).Registers() {
		fmt.Fprintf(md.Output, "%-14s %#010x\n", r.Name, r.Addr)
	}

	return nil
}
