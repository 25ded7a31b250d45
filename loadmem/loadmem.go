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

// Package loadmem defines the memory widget concept and provides a simulated
// memory widget. The memory widget gives the host direct access to the
// target's memory, outside of the normal operation of the target.
//
// Reads are in units of a chunk, which is the width of the memory data bus
// multiplied by the number of beats in a fetch. Writes of any length are
// accepted and it is the widget's responsibility to split them into bursts.
package loadmem

import (
	"github.com/jetsetilly/dmibridge/chunk"
	"github.com/jetsetilly/dmibridge/curated"
)

// Widget is the memory widget capability.
type Widget interface {
	// ReadChunk performs one bus aligned fetch at the address. The returned
	// chunk contains MaxChunkWords() words.
	ReadChunk(addr uint64) chunk.Chunk

	// WriteChunk writes the first size bytes of the chunk to the address.
	WriteChunk(addr uint64, c chunk.Chunk, size int)

	// MaxChunkWords is the number of 32 bit words returned by ReadChunk().
	MaxChunkWords() int
}

// WordWidth is the width in bytes of a word in the memory widget's data bus.
const WordWidth = 4

const pageSize = 4096

// Sentinel patterns for memory errors.
const (
	InvalidGeometry = "loadmem: invalid geometry: %s"
)

// Memory is a simulated memory widget backed by sparse pages. Memory that
// has never been written reads as zero.
type Memory struct {
	chunkWords int
	burstBytes int
	pages      map[uint64][]byte

	// number of calls to ReadChunk() and the number of bursts generated by
	// WriteChunk()
	Fetches int
	Bursts  int
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The chunkWords argument is the number of words in a fetch and burstBytes
// is the maximum number of bytes in a single write burst.
func NewMemory(chunkWords int, burstBytes int) (*Memory, error) {
	if chunkWords <= 0 {
		return nil, curated.Errorf(InvalidGeometry, "chunk must contain at least one word")
	}
	if burstBytes <= 0 || burstBytes%WordWidth != 0 {
		return nil, curated.Errorf(InvalidGeometry, "burst length must be a positive multiple of the word width")
	}
	return &Memory{
		chunkWords: chunkWords,
		burstBytes: burstBytes,
		pages:      make(map[uint64][]byte),
	}, nil
}

func (m *Memory) page(addr uint64, create bool) []byte {
	p, ok := m.pages[addr/pageSize]
	if !ok && create {
		p = make([]byte, pageSize)
		m.pages[addr/pageSize] = p
	}
	return p
}

// Peek fills b with the contents of memory starting at the address.
func (m *Memory) Peek(addr uint64, b []byte) {
	for i := range b {
		a := addr + uint64(i)
		if p := m.page(a, false); p != nil {
			b[i] = p[a%pageSize]
		} else {
			b[i] = 0
		}
	}
}

// Poke writes b to memory starting at the address.
func (m *Memory) Poke(addr uint64, b []byte) {
	for i, v := range b {
		a := addr + uint64(i)
		m.page(a, true)[a%pageSize] = v
	}
}

// ReadChunk implements the Widget interface.
func (m *Memory) ReadChunk(addr uint64) chunk.Chunk {
	m.Fetches++
	c := make(chunk.Chunk, m.chunkWords*WordWidth)
	m.Peek(addr, c)
	return c
}

// WriteChunk implements the Widget interface.
func (m *Memory) WriteChunk(addr uint64, c chunk.Chunk, size int) {
	size = min(size, len(c))
	for off := 0; off < size; off += m.burstBytes {
		n := min(m.burstBytes, size-off)
		m.Poke(addr+uint64(off), c[off:off+n])
		m.Bursts++
	}
}

// MaxChunkWords implements the Widget interface.
func (m *Memory) MaxChunkWords() int {
	return m.chunkWords
}
