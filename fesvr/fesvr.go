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

// Package fesvr is a debug transport engine. It implements the dtm.Engine
// interface.
//
// The engine's host program is written as straight-line code that runs in
// its own goroutine. Whenever the host program needs something from the
// target it yields and control returns to whoever called the engine. The
// engine is a coroutine: control passes back and forth over unbuffered
// channels and only one side ever runs at a time.
//
// The engine is bound to the goroutine that created it. The Tick() and
// SwitchToHost() functions transfer control to the host program and they
// panic if they are called from any other goroutine.
//
// The host program recognises the following tokens. The first token is the
// program name and is ignored. Tokens that are not recognised are ignored.
//
//	+entry=ADDR        address the program image is loaded to
//	+tohost=ADDR       address polled for the exit status
//	+poll-interval=N   number of ticks between polls of tohost
//	+loadmem-verify    read back the program image after loading
//
// The first token that does not begin with a plus sign is the path to the
// program image.
package fesvr

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/jetsetilly/dmibridge/assert"
	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/dtm"
)

// Default values for the host program options.
const (
	DefaultEntry        uint64 = 0x80000000
	DefaultToHost       uint64 = 0x80001000
	DefaultPollInterval        = 1
)

// Patterns for curated errors.
const (
	AffinityViolation = "fesvr: engine bound to goroutine %d but called from goroutine %d"
	InvalidToken      = "fesvr: invalid token (%s): %v"
	ImageError        = "fesvr: program image: %v"
	ImageWithoutMem   = "fesvr: program image (%s) given but target has no memory"
)

// Engine implements the dtm.Engine interface.
type Engine struct {
	affinity assert.Affinity

	// coroutine handoff. resume is closed by Close()
	resume chan struct{}
	yield  chan struct{}
	closed bool

	// the host program has returned
	finished bool

	// host program options
	hasMem       bool
	image        []byte
	entry        uint64
	tohost       uint64
	pollInterval int
	verify       bool

	// debug module interface. reqWait is true from the moment the host
	// program makes a request until the request has been accepted by the
	// target. respWait is true from then until the response arrives
	req      dtm.Request
	reqWait  bool
	respWait bool
	resp     dtm.Response

	// loadmem queues
	readReqs  []dtm.LoadmemRequest
	writeReqs []dtm.LoadmemRequest
	writeData [][]byte
	curWrite  []byte
	readWords []uint32

	done     bool
	exitCode int
}

// New is the preferred method of initialisation for the Engine type. It
// satisfies the dtm.Ctor type.
func New(args []string, hasMem bool) (dtm.Engine, error) {
	e := &Engine{
		resume:       make(chan struct{}),
		yield:        make(chan struct{}),
		hasMem:       hasMem,
		entry:        DefaultEntry,
		tohost:       DefaultToHost,
		pollInterval: DefaultPollInterval,
	}

	var path string

	if len(args) > 0 {
		args = args[1:]
	}

	for _, arg := range args {
		if !strings.HasPrefix(arg, "+") {
			if path == "" {
				path = arg
			}
			continue
		}

		var err error
		key, v, _ := strings.Cut(arg, "=")
		switch key {
		case "+entry":
			e.entry, err = strconv.ParseUint(v, 0, 64)
		case "+tohost":
			e.tohost, err = strconv.ParseUint(v, 0, 64)
		case "+poll-interval":
			e.pollInterval, err = strconv.Atoi(v)
			if err == nil && e.pollInterval < 1 {
				e.pollInterval = 1
			}
		case "+loadmem-verify":
			e.verify = true
		}
		if err != nil {
			return nil, curated.Errorf(InvalidToken, arg, err)
		}
	}

	if path != "" {
		if !hasMem {
			return nil, curated.Errorf(ImageWithoutMem, path)
		}
		var err error
		e.image, err = os.ReadFile(path)
		if err != nil {
			return nil, curated.Errorf(ImageError, err)
		}
	}

	e.affinity.Bind()
	go e.host()

	return e, nil
}

// SetImage replaces the program image. It must be called before the first
// call to Tick().
func (e *Engine) SetImage(image []byte) {
	e.image = image
}

func (e *Engine) check() {
	if id, ok := e.affinity.Check(); !ok {
		panic(curated.Errorf(AffinityViolation, e.affinity.Owner(), id))
	}
}

// switchTo runs the host program until it next yields.
func (e *Engine) switchTo() {
	if e.finished || e.closed {
		return
	}
	e.resume <- struct{}{}
	<-e.yield
}

// wait is called by the host program to yield.
func (e *Engine) wait() {
	e.yield <- struct{}{}
	if _, ok := <-e.resume; !ok {
		runtime.Goexit()
	}
}

// host is the body of the host program goroutine.
func (e *Engine) host() {
	if _, ok := <-e.resume; !ok {
		return
	}
	e.exitCode = e.run()
	e.done = true
	e.finished = true
	e.yield <- struct{}{}
}

// Close implements the dtm.Closer interface. It stops the host program if it
// has not yet finished.
func (e *Engine) Close() error {
	if !e.closed {
		e.closed = true
		close(e.resume)
	}
	return nil
}

// ReqValid implements the dtm.Engine interface.
func (e *Engine) ReqValid() bool {
	return e.reqWait
}

// ReqBits implements the dtm.Engine interface.
func (e *Engine) ReqBits() dtm.Request {
	return e.req
}

// Tick implements the dtm.Engine interface.
func (e *Engine) Tick(inReady bool, respValid bool, resp dtm.Response) {
	e.check()

	if !e.respWait {
		if !e.reqWait {
			e.switchTo()
		} else if inReady {
			// the request was forwarded during the previous tick
			e.reqWait = false
			e.respWait = true
		}
	}

	if respValid {
		if !e.respWait {
			return
		}
		e.respWait = false
		e.resp = resp
		e.switchTo()
	}
}

// HasLoadmemRequests implements the dtm.Engine interface.
func (e *Engine) HasLoadmemRequests() bool {
	return len(e.readReqs) > 0 || len(e.writeReqs) > 0
}

// RecvLoadmemReadReq implements the dtm.Engine interface.
func (e *Engine) RecvLoadmemReadReq() (dtm.LoadmemRequest, bool) {
	if len(e.readReqs) == 0 {
		return dtm.LoadmemRequest{}, false
	}
	req := e.readReqs[0]
	e.readReqs = e.readReqs[1:]
	return req, true
}

// RecvLoadmemWriteReq implements the dtm.Engine interface.
func (e *Engine) RecvLoadmemWriteReq() (dtm.LoadmemRequest, bool) {
	if len(e.writeReqs) == 0 {
		return dtm.LoadmemRequest{}, false
	}
	req := e.writeReqs[0]
	e.writeReqs = e.writeReqs[1:]
	e.curWrite = e.writeData[0]
	e.writeData = e.writeData[1:]
	return req, true
}

// SendLoadmemWord implements the dtm.Engine interface.
func (e *Engine) SendLoadmemWord(word uint32) {
	e.readWords = append(e.readWords, word)
}

// RecvLoadmemData implements the dtm.Engine interface.
func (e *Engine) RecvLoadmemData(buf []byte) {
	n := copy(buf, e.curWrite)
	clear(buf[n:])
}

// SwitchToHost implements the dtm.Engine interface.
func (e *Engine) SwitchToHost() {
	e.check()
	e.switchTo()
}

// Done implements the dtm.Engine interface.
func (e *Engine) Done() bool {
	return e.done
}

// ExitCode implements the dtm.Engine interface.
func (e *Engine) ExitCode() int {
	return e.exitCode
}
