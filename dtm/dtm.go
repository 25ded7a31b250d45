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

// Package dtm defines the interface to a debug transport module engine. The
// engine is the host side of the debug module interface. It issues debug
// requests, consumes debug responses and originates loadmem requests, which
// bypass the debug module for bulk memory transfers.
//
// The engine runs its own protocol state machine. The bridge that drives it
// does not know, or need to know, what state the engine is in. It only
// forwards values between the engine and the hardware registers.
package dtm

import "fmt"

// Op is the operation field of a debug module interface request.
type Op uint32

// List of valid Op values.
const (
	OpNop   Op = 0
	OpRead  Op = 1
	OpWrite Op = 2
)

func (op Op) String() string {
	switch op {
	case OpNop:
		return "nop"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	}
	return fmt.Sprintf("op(%d)", uint32(op))
}

// Resp is the response field of a debug module interface response.
type Resp uint32

// List of valid Resp values.
const (
	RespSuccess Resp = 0
	RespFailed  Resp = 2
	RespBusy    Resp = 3
)

func (r Resp) String() string {
	switch r {
	case RespSuccess:
		return "success"
	case RespFailed:
		return "failed"
	case RespBusy:
		return "busy"
	}
	return fmt.Sprintf("resp(%d)", uint32(r))
}

// Request is a debug request from the engine to the target.
type Request struct {
	Addr uint32
	Op   Op
	Data uint32
}

func (r Request) String() string {
	return fmt.Sprintf("addr(%#x) op(%s) data(%#x)", r.Addr, r.Op, r.Data)
}

// Response is a debug response from the target to the engine.
type Response struct {
	Resp Resp
	Data uint32
}

func (r Response) String() string {
	return fmt.Sprintf("resp(%s) data(%#x)", r.Resp, r.Data)
}

// LoadmemRequest is a bulk memory transfer request. The address is relative
// to the target's memory. The direction of the transfer is implied by the
// queue the request was taken from.
type LoadmemRequest struct {
	Addr uint64
	Size int
}

func (r LoadmemRequest) String() string {
	return fmt.Sprintf("addr(%#x) size(%d)", r.Addr, r.Size)
}

// MaxTransfer is the largest number of bytes in a single loadmem write.
const MaxTransfer = 1024

// Engine is the capability required of a debug transport engine.
type Engine interface {
	// ReqValid is true if the engine has a request it wants sent. ReqBits
	// returns that request.
	ReqValid() bool
	ReqBits() Request

	// Tick advances the engine's protocol state machine. The inReady argument
	// is the state of the target's request ready flag. If respValid is true
	// then resp is a response from the target.
	Tick(inReady bool, respValid bool, resp Response)

	// HasLoadmemRequests is true if there are any pending loadmem requests.
	HasLoadmemRequests() bool

	// RecvLoadmemReadReq and RecvLoadmemWriteReq take the next pending
	// request from the read and write queues. The boolean is false if the
	// queue is empty.
	RecvLoadmemReadReq() (LoadmemRequest, bool)
	RecvLoadmemWriteReq() (LoadmemRequest, bool)

	// SendLoadmemWord delivers one word of data for the current read request.
	SendLoadmemWord(word uint32)

	// RecvLoadmemData fills the buffer with data for the current write
	// request. The length of the buffer is the number of bytes wanted.
	RecvLoadmemData(buf []byte)

	// SwitchToHost gives control back to the engine so that it can consume
	// the data delivered by SendLoadmemWord().
	SwitchToHost()

	// Done is true once the engine has terminated. ExitCode is only
	// meaningful once Done is true.
	Done() bool
	ExitCode() int
}

// Closer is implemented by engines that hold resources that should be
// released when the bridge that owns the engine is torn down.
type Closer interface {
	Close() error
}

// Ctor creates a new engine from a list of command line tokens. The first
// token is the program name. The hasMem argument says whether the target has
// memory that can be reached with loadmem requests.
type Ctor func(args []string, hasMem bool) (Engine, error)
