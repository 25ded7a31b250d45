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
	"github.com/jetsetilly/dmibridge/chunk"
	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/dtm"
	"github.com/jetsetilly/dmibridge/logger"
)

// bypass services loadmem requests until the engine has none pending.
//
// a pending read is always serviced before a pending write. the engine
// issues a narrow write only after the read that precedes it has completed.
func (b *Bridge) bypass() {
	for b.engine.HasLoadmemRequests() {
		if req, ok := b.engine.RecvLoadmemReadReq(); ok {
			b.loadmemRead(req)
		}
		if req, ok := b.engine.RecvLoadmemWriteReq(); ok {
			b.loadmemWrite(req)
		}
	}
}

// loadmemRead fetches memory in units of the memory widget's chunk and
// delivers it to the engine one word at a time.
func (b *Bridge) loadmemRead(req dtm.LoadmemRequest) {
	width := chunk.Width[uint32]()

	if req.Size%width != 0 {
		panic(curated.Errorf(ReadSizeMisaligned, req.Size, width))
	}
	if !b.hasMem {
		panic(curated.Errorf(NoMemory, "read"))
	}

	logger.Logf(b, "dmi", "loadmem read: %v", req)

	addr := req.Addr + b.hostOffset
	size := req.Size

	for size > 0 {
		words := chunk.Decode[uint32](b.mem.ReadChunk(addr))
		requested := min(size/width, b.mem.MaxChunkWords())

		// the decoded slice stops at the last non-zero word. the engine
		// expects exactly the requested number of words so the missing words
		// are sent as zero
		for i := 0; i < requested; i++ {
			if i < len(words) {
				b.engine.SendLoadmemWord(words[i])
			} else {
				b.engine.SendLoadmemWord(0)
			}
		}

		size -= requested * width
		addr += uint64(requested * width)
	}

	// the engine consumes the data when it next runs
	b.engine.SwitchToHost()
}

// loadmemWrite takes data from the engine and hands it to the memory widget.
func (b *Bridge) loadmemWrite(req dtm.LoadmemRequest) {
	if req.Size > dtm.MaxTransfer {
		panic(curated.Errorf(WriteSizeExceeded, req.Size, dtm.MaxTransfer))
	}
	if !b.hasMem {
		panic(curated.Errorf(NoMemory, "write"))
	}

	logger.Logf(b, "dmi", "loadmem write: %v", req)

	buf := b.writeBuf[:req.Size]
	b.engine.RecvLoadmemData(buf)
	b.mem.WriteChunk(req.Addr+b.hostOffset, chunk.Encode[uint32](buf), req.Size)
}
