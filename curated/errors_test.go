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

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/dmibridge/curated"
	"github.com/jetsetilly/dmibridge/test"
)

const testPattern = "test error: %d"
const wrapPattern = "wrapped: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("dmi: %v", curated.Errorf("dmi: engine failed"))
	test.ExpectEquality(t, e.Error(), "dmi: engine failed")

	e = curated.Errorf("a: b: %v", curated.Errorf("b: c"))
	test.ExpectEquality(t, e.Error(), "a: b: c")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectEquality(t, e.Error(), "test error: 10")
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectSuccess(t, curated.IsAny(e))

	f := curated.Errorf(wrapPattern, e)
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))

	// uncurated errors
	test.ExpectFailure(t, curated.IsAny(io.EOF))
	test.ExpectFailure(t, curated.Is(io.EOF, testPattern))
	test.ExpectFailure(t, curated.Has(nil, testPattern))
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf(wrapPattern, io.EOF)
	test.ExpectSuccess(t, errors.Is(e, io.EOF))
	test.ExpectEquality(t, e.Error(), "wrapped: EOF")
}
