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

package dmi_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/dmibridge/dmi"
	"github.com/jetsetilly/dmibridge/test"
)

func TestStepSize(t *testing.T) {
	a := dmi.ParseArgs(0, nil)
	test.ExpectEquality(t, a.StepSize, uint32(2004765))
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm]")

	a = dmi.ParseArgs(0, []string{"+fesvr-step-size=500"})
	test.ExpectEquality(t, a.StepSize, uint32(500))

	// the token is passed through to the engine
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm +fesvr-step-size=500]")

	// values that cannot be parsed are ignored
	for _, v := range []string{"abc", "-1", "", "4294967296", "0x10"} {
		a = dmi.ParseArgs(0, []string{"+fesvr-step-size=" + v})
		test.ExpectEquality(t, a.StepSize, dmi.DefaultStepSize, v)
	}

	// the last valid value is used
	a = dmi.ParseArgs(0, []string{"+fesvr-step-size=10", "+fesvr-step-size=20", "+fesvr-step-size=x"})
	test.ExpectEquality(t, a.StepSize, uint32(20))
}

func TestProgTokens(t *testing.T) {
	args := []string{
		"+prog0=zero one",
		"+permissive",
		"+prog1=first  second",
		"image.bin",
		"+prog10=tenth",
	}

	a := dmi.ParseArgs(0, args)
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm zero one +permissive image.bin]")

	a = dmi.ParseArgs(1, args)
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm +permissive first second image.bin]")

	a = dmi.ParseArgs(10, args)
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm +permissive image.bin tenth]")

	a = dmi.ParseArgs(2, args)
	test.ExpectEquality(t, fmt.Sprint(a.Tokens), "[firesim_dtm +permissive image.bin]")
}
