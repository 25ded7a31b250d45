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
	"github.com/jetsetilly/dmibridge/dtm"
	"github.com/jetsetilly/dmibridge/logger"
)

// at most one response and one request are forwarded each tick. there is no
// queue in the bridge. the engine's request valid flag and the target's
// valid/ready registers are the only flow control.
//
// register writes are single tick pulses. the target latches them when it
// next advances.

// recvResponse takes a response from the target if one is available and
// acknowledges it. the boolean is false if there was no response.
func (b *Bridge) recvResponse() (dtm.Response, bool) {
	if b.regs.Read(b.addrs.OutValid) == 0 {
		return dtm.Response{}, false
	}

	resp := dtm.Response{
		Resp: dtm.Resp(b.regs.Read(b.addrs.OutBitsResp)),
		Data: b.regs.Read(b.addrs.OutBitsData),
	}
	logger.Logf(b, "dmi", "resp read: %v", resp)

	b.regs.Write(b.addrs.OutReady, 1)

	return resp, true
}

// sendRequest forwards the engine's request if it has one and the target is
// ready to accept it.
func (b *Bridge) sendRequest() {
	if !b.engine.ReqValid() || b.regs.Read(b.addrs.InReady) == 0 {
		return
	}

	req := b.engine.ReqBits()
	logger.Logf(b, "dmi", "req sent: %v", req)

	b.regs.Write(b.addrs.InBitsAddr, req.Addr)
	b.regs.Write(b.addrs.InBitsOp, uint32(req.Op))
	b.regs.Write(b.addrs.InBitsData, req.Data)
	b.regs.Write(b.addrs.InValid, 1)
}
