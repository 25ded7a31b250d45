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

package logger_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jetsetilly/dmibridge/logger"
	"github.com/jetsetilly/dmibridge/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	log.Log(logger.Allow, "dmi", "dmactive")
	log.Log(logger.Allow, "fesvr", "haltreq")
	log.Log(logger.Allow, "dmi", "resumereq")

	all := "dmi: dmactive\nfesvr: haltreq\ndmi: resumereq\n"

	for _, tc := range []struct {
		n        int
		expected string
	}{
		{n: 0, expected: ""},
		{n: 1, expected: "dmi: resumereq\n"},
		{n: 2, expected: "fesvr: haltreq\ndmi: resumereq\n"},
		{n: 3, expected: all},
		{n: 1000, expected: all},
	} {
		w := &strings.Builder{}
		log.Tail(w, tc.n)
		test.ExpectEquality(t, w.String(), tc.expected, tc.n)
	}

	w := &strings.Builder{}
	log.Write(w)
	test.ExpectEquality(t, w.String(), all)

	log.Clear()
	w.Reset()
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeatAndCapacity(t *testing.T) {
	log := logger.NewLogger(2)
	w := &test.CompareWriter{}

	for range 3 {
		log.Log(logger.Allow, "fesvr", "tohost (0x0)")
	}
	log.Write(w)
	test.ExpectSuccess(t, w.Compare("fesvr: tohost (0x0) (repeat x3)\n"))

	// newlines are removed from entries
	log.Log(logger.Allow, "dmi", "request\n")
	log.Log(logger.Allow, "dmi", "response")
	w.Clear()
	log.Write(w)
	test.ExpectSuccess(t, w.Compare("dmi: request\ndmi: response\n"), w.String())
}

// verbosity stands in for a bridge that only logs when it is verbose
type verbosity struct {
	level int
}

func (v verbosity) AllowLogging() bool {
	return v.level > 50
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Flag(false), "dmi", "never")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	var v verbosity
	for range 100 {
		v.level = rand.IntN(100)
		log.Clear()
		w.Reset()
		log.Logf(v, "dmi", "level %d", v.level)
		log.Write(w)
		if v.AllowLogging() {
			test.ExpectEquality(t, w.String(), fmt.Sprintf("dmi: level %d\n", v.level))
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}
}

func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")
	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()
	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")

	log.Clear()
	w.Reset()
	log.Log(logger.Allow, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: 100\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.CompareWriter{}

	log.SetEcho(w)
	log.Log(logger.Allow, "dmi", "echo")
	test.ExpectSuccess(t, w.Compare("dmi: echo\n"))

	log.SetEcho(nil)
	log.Log(logger.Allow, "dmi", "quiet")
	test.ExpectSuccess(t, w.Compare("dmi: echo\n"))
}

func TestColorizer(t *testing.T) {
	w := &test.CompareWriter{}
	c := logger.NewColorizer(w)
	n, err := c.Write([]byte("dmi: detail\n"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 12)
	test.ExpectSuccess(t, w.Compare("\033[2mdmi:\033[0m detail\n"))
}
