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

package modalflag_test

import (
	"fmt"
	"testing"

	"github.com/jetsetilly/dmibridge/modalflag"
	"github.com/jetsetilly/dmibridge/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 0)
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-verbose", "-steps", "10", "-base", "0x1000", "image.bin", "+loadmem-verify"})
	verbose := md.AddBool("verbose", false, "")
	steps := md.AddInt("steps", 0, "")
	base := md.AddAddress("base", 0x2000, "")
	name := md.AddString("name", "dmi", "")

	test.ExpectEquality(t, *base, uint64(0x2000))

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *verbose)
	test.ExpectEquality(t, *steps, 10)
	test.ExpectEquality(t, *base, uint64(0x1000))
	test.ExpectEquality(t, *name, "dmi")

	test.ExpectEquality(t, fmt.Sprint(md.RemainingArgs()), "[image.bin +loadmem-verify]")
	test.ExpectEquality(t, md.GetArg(1), "+loadmem-verify")
	test.ExpectEquality(t, md.GetArg(2), "")

	var set []string
	md.Visit(func(f string) {
		set = append(set, f)
	})
	test.ExpectEquality(t, fmt.Sprint(set), "[base steps verbose]")
}

func TestFlagError(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-base", "nonsense"})
	md.AddAddress("base", 0, "")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)

	md.NewArgs([]string{"-unknown"})
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "map", "-base", "0x100", "extra"})
	logging := md.AddBool("log", false, "")
	md.AddSubModes("RUN", "MAP")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *logging)
	test.ExpectEquality(t, md.Mode(), "MAP")

	md.NewMode()
	base := md.AddAddress("base", 0, "")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *base, uint64(0x100))
	test.ExpectEquality(t, fmt.Sprint(md.RemainingArgs()), "[extra]")
	test.ExpectEquality(t, md.Path(), "MAP")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"+prog0=image.bin"})
	md.AddSubModes("run", "map")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	// the argument was not a mode name so it is still a remaining argument
	test.ExpectEquality(t, fmt.Sprint(md.RemainingArgs()), "[+prog0=image.bin]")
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"), tw.String())
}

func TestHelp(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    \ttest flag (default true)\n" +
		"\n" +
		"  modes: A, B (default A)\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestHelpForMode(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"run", "-h"})
	md.AddSubModes("RUN")
	_, _ = md.Parse()

	md.NewMode()
	md.AdditionalHelp("plusargs are passed to the bridge")
	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage for RUN mode:\n" +
		"\n" +
		"plusargs are passed to the bridge\n"
	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}
