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

package fesvr_test

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/dtm"
	"github.com/jetsetilly/dmibridge/fesvr"
	"github.com/jetsetilly/dmibridge/loadmem"
	"github.com/jetsetilly/dmibridge/test"
)

// harness drives the engine in the same way as the dmi bridge. a request
// forwarded in one tick is answered in the next.
type harness struct {
	t *testing.T
	e *fesvr.Engine

	mem        *loadmem.Memory
	dropWrites bool

	// the debug module
	halted  bool
	never   bool
	failing bool

	pending  *dtm.Response
	requests []dtm.Request
	reads    int
	writes   int
}

func newHarness(t *testing.T, args []string, hasMem bool) *harness {
	t.Helper()

	e, err := fesvr.New(args, hasMem)
	test.DemandSuccess(t, err)

	h := &harness{t: t, e: e.(*fesvr.Engine)}
	if hasMem {
		h.mem, err = loadmem.NewMemory(4, 64)
		test.DemandSuccess(t, err)
	}

	t.Cleanup(func() {
		h.e.Close()
	})

	return h
}

func (h *harness) request(req dtm.Request) dtm.Response {
	if h.failing {
		return dtm.Response{Resp: dtm.RespFailed}
	}

	switch req.Op {
	case dtm.OpWrite:
		if req.Addr == dtm.DMControl && !h.never {
			if req.Data&dtm.DMControlHaltReq != 0 {
				h.halted = true
			}
			if req.Data&dtm.DMControlResumeReq != 0 {
				h.halted = false
			}
		}
	case dtm.OpRead:
		if req.Addr == dtm.DMStatus {
			if h.halted {
				return dtm.Response{Data: dtm.DMStatusAllHalted}
			}
			return dtm.Response{Data: dtm.DMStatusAllRunning}
		}
	}

	return dtm.Response{}
}

func (h *harness) tick() {
	var resp dtm.Response
	valid := h.pending != nil
	if valid {
		resp = *h.pending
		h.pending = nil
	}

	h.e.Tick(true, valid, resp)

	for h.e.HasLoadmemRequests() {
		if req, ok := h.e.RecvLoadmemReadReq(); ok {
			h.reads++
			b := make([]byte, 4)
			for i := 0; i < req.Size; i += 4 {
				h.mem.Peek(req.Addr+uint64(i), b)
				h.e.SendLoadmemWord(binary.LittleEndian.Uint32(b))
			}
			h.e.SwitchToHost()
		}
		if req, ok := h.e.RecvLoadmemWriteReq(); ok {
			h.writes++
			test.ExpectSuccess(h.t, req.Size <= dtm.MaxTransfer)
			b := make([]byte, req.Size)
			h.e.RecvLoadmemData(b)
			if !h.dropWrites {
				h.mem.Poke(req.Addr, b)
			}
		}
	}

	if !h.e.Done() && h.e.ReqValid() {
		req := h.e.ReqBits()
		h.requests = append(h.requests, req)
		resp := h.request(req)
		h.pending = &resp
	}
}

// run ticks the engine until it is done. the function returns false if the
// engine is not done after the number of ticks.
func (h *harness) run(ticks int) bool {
	for range ticks {
		h.tick()
		if h.e.Done() {
			return true
		}
	}
	return false
}

func TestTokens(t *testing.T) {
	_, err := fesvr.New([]string{"dtm", "+entry=bad"}, true)
	test.ExpectSuccess(t, curated.Is(err, fesvr.InvalidToken))

	_, err = fesvr.New([]string{"dtm", "+poll-interval=x"}, true)
	test.ExpectSuccess(t, curated.Is(err, fesvr.InvalidToken))

	_, err = fesvr.New([]string{"dtm", "program.bin"}, false)
	test.ExpectSuccess(t, curated.Is(err, fesvr.ImageWithoutMem))

	_, err = fesvr.New([]string{"dtm", filepath.Join(t.TempDir(), "missing.bin")}, true)
	test.ExpectSuccess(t, curated.Is(err, fesvr.ImageError))

	// the program name is never taken to be the program image. unknown plus
	// tokens are ignored
	e, err := fesvr.New([]string{"program.bin", "+fesvr-step-size=10", "+entry=0x1000"}, false)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, e.(*fesvr.Engine).Close())
}

func TestWithoutMemory(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, false)

	test.DemandSuccess(t, h.run(100))
	test.ExpectEquality(t, h.e.ExitCode(), 0)
	test.ExpectEquality(t, h.reads, 0)
	test.ExpectEquality(t, h.writes, 0)

	test.DemandSuccess(t, len(h.requests) >= 5)
	test.ExpectEquality(t, h.requests[0], dtm.Request{Addr: dtm.DMControl, Op: dtm.OpWrite, Data: dtm.DMControlDMActive})
	test.ExpectEquality(t, h.requests[1], dtm.Request{Addr: dtm.DMControl, Op: dtm.OpWrite, Data: dtm.DMControlDMActive | dtm.DMControlHaltReq})
	test.ExpectEquality(t, h.requests[2], dtm.Request{Addr: dtm.DMStatus, Op: dtm.OpRead})
	test.ExpectEquality(t, h.requests[3], dtm.Request{Addr: dtm.DMControl, Op: dtm.OpWrite, Data: dtm.DMControlDMActive | dtm.DMControlResumeReq})

	// further ticks have no effect
	n := len(h.requests)
	h.tick()
	test.ExpectEquality(t, len(h.requests), n)
	test.ExpectSuccess(t, h.e.Done())
}

func TestOneRequestAtATime(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, false)

	// the first tick starts the host program and the request is forwarded
	h.tick()
	test.ExpectEquality(t, len(h.requests), 1)
	test.ExpectSuccess(t, h.e.ReqValid())

	// the second tick accepts the request and delivers the response. the
	// host program then makes its next request
	h.tick()
	test.ExpectEquality(t, len(h.requests), 2)
	test.ExpectEquality(t, h.requests[1].Data, dtm.DMControlDMActive|dtm.DMControlHaltReq)

	// the request has not been accepted so a response is not expected and is
	// discarded
	h.e.Tick(false, true, dtm.Response{Data: 0xff})
	test.ExpectSuccess(t, h.e.ReqValid())
	test.ExpectEquality(t, h.e.ReqBits(), h.requests[1])
	test.ExpectFailure(t, h.e.Done())
}

func TestDMIFailure(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, false)
	h.failing = true

	test.DemandSuccess(t, h.run(100))
	test.ExpectEquality(t, h.e.ExitCode(), fesvr.ExitDMIFailed)
	test.ExpectEquality(t, len(h.requests), 1)
}

func TestHartTimeout(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, false)
	h.never = true

	test.DemandSuccess(t, h.run(10000))
	test.ExpectEquality(t, h.e.ExitCode(), fesvr.ExitHartTimeout)
}

func image(size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(i*3 + 1)
	}
	return b
}

func TestLoadAndPoll(t *testing.T) {
	h := newHarness(t, []string{"dtm", "+loadmem-verify", "+entry=0x2000", "+tohost=0x1000"}, true)
	img := image(2500)
	h.e.SetImage(img)

	// run until the host program is polling tohost
	test.ExpectFailure(t, h.run(200))
	test.ExpectFailure(t, h.halted)
	test.ExpectEquality(t, h.writes, 3)

	// three reads for the verify plus at least one poll
	test.ExpectSuccess(t, h.reads > 3)

	b := make([]byte, len(img))
	h.mem.Peek(0x2000, b)
	test.ExpectEquality(t, string(b), string(img))

	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], 7<<1|1)
	h.mem.Poke(0x1000, v[:])

	test.DemandSuccess(t, h.run(10))
	test.ExpectEquality(t, h.e.ExitCode(), 7)

	h.mem.Peek(0x1000, v[:])
	test.ExpectEquality(t, binary.LittleEndian.Uint64(v[:]), uint64(0))
}

func TestPollInterval(t *testing.T) {
	h := newHarness(t, []string{"dtm", "+poll-interval=5"}, true)

	test.ExpectFailure(t, h.run(100))
	n := h.reads
	test.ExpectFailure(t, h.run(50))
	test.ExpectEquality(t, h.reads-n, 10)
}

func TestVerifyFailure(t *testing.T) {
	h := newHarness(t, []string{"dtm", "+loadmem-verify"}, true)
	h.e.SetImage(image(100))
	h.dropWrites = true

	test.DemandSuccess(t, h.run(100))
	test.ExpectEquality(t, h.e.ExitCode(), fesvr.ExitVerifyFailed)

	// the hart was never resumed
	test.ExpectSuccess(t, h.halted)
}

func TestAffinity(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, false)

	done := make(chan any)
	go func() {
		defer func() {
			done <- recover()
		}()
		h.e.Tick(true, false, dtm.Response{})
	}()

	r := <-done
	err, ok := r.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, fesvr.AffinityViolation))

	// the engine is still usable from the goroutine it is bound to
	test.ExpectSuccess(t, h.run(100))
}

func TestClose(t *testing.T) {
	h := newHarness(t, []string{"dtm"}, true)

	h.tick()
	h.tick()
	test.DemandSuccess(t, h.e.Close())
	test.DemandSuccess(t, h.e.Close())

	// ticking a closed engine does nothing
	n := len(h.requests)
	h.tick()
	test.ExpectEquality(t, len(h.requests), n)
	test.ExpectFailure(t, h.e.Done())
}
