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
	"fmt"
	"strings"

	"github.com/jetsetilly/dmibridge/curated"
)

// AddressMap is the location of each bridge register in the host address
// space.
//
// The "in" registers carry requests into the target and the "out" registers
// carry responses out of the target.
type AddressMap struct {
	InValid    uint64
	InReady    uint64
	InBitsAddr uint64
	InBitsOp   uint64
	InBitsData uint64

	OutValid    uint64
	OutReady    uint64
	OutBitsResp uint64
	OutBitsData uint64

	StepSize uint64
	Start    uint64
	Done     uint64
}

// RegisterStride is the distance in bytes between registers laid out by
// NewAddressMap().
const RegisterStride = 4

// NumRegisters is the number of registers in an AddressMap.
const NumRegisters = 12

// NewAddressMap lays the registers out at consecutive addresses from the base
// address. The order is the same as the order of the fields in the
// AddressMap type.
func NewAddressMap(base uint64) AddressMap {
	r := func(n uint64) uint64 {
		return base + n*RegisterStride
	}
	return AddressMap{
		InValid:     r(0),
		InReady:     r(1),
		InBitsAddr:  r(2),
		InBitsOp:    r(3),
		InBitsData:  r(4),
		OutValid:    r(5),
		OutReady:    r(6),
		OutBitsResp: r(7),
		OutBitsData: r(8),
		StepSize:    r(9),
		Start:       r(10),
		Done:        r(11),
	}
}

// Register is a named register address.
type Register struct {
	Name string
	Addr uint64
}

// Registers returns the name and address of every register in the map.
func (m AddressMap) Registers() [NumRegisters]Register {
	return [NumRegisters]Register{
		{"in_valid", m.InValid},
		{"in_ready", m.InReady},
		{"in_bits_addr", m.InBitsAddr},
		{"in_bits_op", m.InBitsOp},
		{"in_bits_data", m.InBitsData},
		{"out_valid", m.OutValid},
		{"out_ready", m.OutReady},
		{"out_bits_resp", m.OutBitsResp},
		{"out_bits_data", m.OutBitsData},
		{"step_size", m.StepSize},
		{"start", m.Start},
		{"done", m.Done},
	}
}

// Validate checks that no two registers share an address.
func (m AddressMap) Validate() error {
	seen := make(map[uint64]string)
	for _, r := range m.Registers() {
		if n, ok := seen[r.Addr]; ok {
			return curated.Errorf(InvalidAddressMap, fmt.Sprintf("%s and %s share address %#x", n, r.Name, r.Addr))
		}
		seen[r.Addr] = r.Name
	}
	return nil
}

func (m AddressMap) String() string {
	s := strings.Builder{}
	for i, r := range m.Registers() {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%s=%#x", r.Name, r.Addr))
	}
	return s.String()
}
