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

// Package chunk converts between byte buffers and sequences of fixed width
// bus words. A Chunk is the container that the memory widget reads and
// writes. The words in a Chunk are little-endian and the least significant
// word comes first.
//
// Decode() drops trailing words that are zero. A chunk that is entirely zero
// decodes to an empty slice. This means that the length of the decoded slice
// is the number of words up to and including the last non-zero word, and
// not the number of words in the chunk. Callers that need a fixed number of
// words must pad the result themselves, either with Pad() or by substituting
// zero for any index beyond the length of the slice.
package chunk

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Chunk is a little-endian container of fixed width words.
type Chunk []byte

// Width returns the number of bytes in a word of type W.
func Width[W constraints.Unsigned]() int {
	var w W
	return int(unsafe.Sizeof(w))
}

// Words returns the number of words of type W needed to hold size bytes.
func Words[W constraints.Unsigned](size int) int {
	width := Width[W]()
	return (size + width - 1) / width
}

// Encode packs data into words of type W. The final partial word, if there
// is one, is padded with zero bytes.
func Encode[W constraints.Unsigned](data []byte) Chunk {
	c := make(Chunk, Words[W](len(data))*Width[W]())
	copy(c, data)
	return c
}

// Decode unpacks the chunk into words of type W. Trailing zero words are not
// included in the returned slice. If the length of the chunk is not a
// multiple of the word width the final partial word is treated as if it was
// padded with zero bytes.
func Decode[W constraints.Unsigned](c Chunk) []W {
	width := Width[W]()
	words := make([]W, Words[W](len(c)))

	nonZero := 0
	for i := range words {
		var w W
		for j := 0; j < width; j++ {
			idx := i*width + j
			if idx >= len(c) {
				break
			}
			w |= W(c[idx]) << (8 * j)
		}
		words[i] = w
		if w != 0 {
			nonZero = i + 1
		}
	}

	return words[:nonZero]
}

// Pad returns a slice of exactly n words. Words missing from the end of the
// words argument are zero. If there are more than n words the slice is
// truncated.
func Pad[W constraints.Unsigned](words []W, n int) []W {
	p := make([]W, n)
	copy(p, words)
	return p
}

// Bytes serialises the words, least significant word first, and returns the
// first size bytes. Words missing from the end of the slice are treated as
// zero.
func Bytes[W constraints.Unsigned](words []W, size int) []byte {
	width := Width[W]()
	b := make([]byte, Words[W](size)*width)
	for i, w := range words {
		if i*width >= len(b) {
			break
		}
		for j := 0; j < width; j++ {
			b[i*width+j] = byte(w >> (8 * j))
		}
	}
	return b[:size]
}
