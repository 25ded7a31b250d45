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

package fesvr

import (
	"bytes"
	"encoding/binary"

	"github.com/jetsetilly/dmibridge/chunk"
	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/dtm"
	"github.com/jetsetilly/dmibridge/logger"
)

// Exit codes used by the host program when it cannot run the target.
const (
	ExitVerifyFailed = 1
	ExitDMIFailed    = 2
	ExitHartTimeout  = 3
)

// the number of dmstatus reads before giving up on a hart state change
const maxStatusPolls = 1000

// Patterns for host program errors. These are logged and the host program
// finishes with one of the exit codes above.
const (
	dmiFailed    = "fesvr: dmi %v: %v"
	hartTimeout  = "fesvr: hart did not reach state (%#x)"
	verifyFailed = "fesvr: loadmem verify failed at (%#x)"
)

// run is the host program. it returns the exit code.
func (e *Engine) run() int {
	err := e.dmiWrite(dtm.DMControl, dtm.DMControlDMActive)
	if err != nil {
		return e.fail(err, ExitDMIFailed)
	}

	err = e.dmiWrite(dtm.DMControl, dtm.DMControlDMActive|dtm.DMControlHaltReq)
	if err != nil {
		return e.fail(err, ExitDMIFailed)
	}

	err = e.waitStatus(dtm.DMStatusAllHalted)
	if err != nil {
		return e.fail(err, ExitHartTimeout)
	}

	if len(e.image) > 0 {
		e.write(e.entry, e.image)
		logger.Logf(logger.Allow, "fesvr", "loaded %d bytes at %#x", len(e.image), e.entry)

		if e.verify {
			if a, ok := e.verifyImage(); !ok {
				return e.fail(curated.Errorf(verifyFailed, a), ExitVerifyFailed)
			}
			logger.Log(logger.Allow, "fesvr", "loadmem verify passed")
		}
	}

	err = e.dmiWrite(dtm.DMControl, dtm.DMControlDMActive|dtm.DMControlResumeReq)
	if err != nil {
		return e.fail(err, ExitDMIFailed)
	}

	err = e.waitStatus(dtm.DMStatusAllRunning)
	if err != nil {
		return e.fail(err, ExitHartTimeout)
	}

	// without memory there is no way of hearing from the target
	if !e.hasMem {
		return 0
	}

	for {
		v := binary.LittleEndian.Uint64(e.read(e.tohost, 8))
		if v != 0 {
			e.write(e.tohost, make([]byte, 8))
			logger.Logf(logger.Allow, "fesvr", "tohost (%#x)", v)
			return int(v >> 1)
		}
		for range e.pollInterval {
			e.wait()
		}
	}
}

func (e *Engine) fail(err error, code int) int {
	logger.Log(logger.Allow, "fesvr", err)
	return code
}

// dmi makes a request and waits for the response. the host program is not
// resumed until the response has arrived.
func (e *Engine) dmi(op dtm.Op, addr uint32, data uint32) (dtm.Response, error) {
	e.req = dtm.Request{Addr: addr, Op: op, Data: data}
	e.reqWait = true
	e.wait()

	if e.resp.Resp != dtm.RespSuccess {
		return e.resp, curated.Errorf(dmiFailed, e.req, e.resp)
	}
	return e.resp, nil
}

func (e *Engine) dmiWrite(addr uint32, data uint32) error {
	_, err := e.dmi(dtm.OpWrite, addr, data)
	return err
}

func (e *Engine) dmiRead(addr uint32) (uint32, error) {
	resp, err := e.dmi(dtm.OpRead, addr, 0)
	return resp.Data, err
}

// waitStatus reads dmstatus until all the bits in mask are set.
func (e *Engine) waitStatus(mask uint32) error {
	for range maxStatusPolls {
		v, err := e.dmiRead(dtm.DMStatus)
		if err != nil {
			return err
		}
		if v&mask == mask {
			return nil
		}
	}
	return curated.Errorf(hartTimeout, mask)
}

// write queues loadmem writes for the data. each write is no longer than
// dtm.MaxTransfer bytes. the host program yields after each write.
func (e *Engine) write(addr uint64, data []byte) {
	for len(data) > 0 {
		n := min(len(data), dtm.MaxTransfer)
		e.writeReqs = append(e.writeReqs, dtm.LoadmemRequest{Addr: addr, Size: n})
		e.writeData = append(e.writeData, data[:n])
		e.wait()
		addr += uint64(n)
		data = data[n:]
	}
}

// read queues a loadmem read and waits for the data. reads are made in whole
// words.
func (e *Engine) read(addr uint64, size int) []byte {
	width := chunk.Width[uint32]()
	n := chunk.Words[uint32](size) * width

	e.readWords = e.readWords[:0]
	e.readReqs = append(e.readReqs, dtm.LoadmemRequest{Addr: addr, Size: n})
	e.wait()

	return chunk.Bytes(e.readWords, n)[:size]
}

// verifyImage reads back the program image. it returns the address of the
// first mismatched transfer.
func (e *Engine) verifyImage() (uint64, bool) {
	for off := 0; off < len(e.image); off += dtm.MaxTransfer {
		n := min(len(e.image)-off, dtm.MaxTransfer)
		addr := e.entry + uint64(off)
		if !bytes.Equal(e.read(addr, n), e.image[off:off+n]) {
			return addr, false
		}
	}
	return 0, true
}
