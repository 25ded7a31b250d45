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
	"strconv"
	"strings"

	"github.com/jetsetilly/dmibridge/logger"
)

// DefaultStepSize is the number of target cycles in a step budget if it is
// not changed with the +fesvr-step-size= token. The value is historical.
const DefaultStepSize uint32 = 2004765

// ProgramName is the first token in the list given to the engine.
const ProgramName = "firesim_dtm"

const (
	stepSizeToken = "+fesvr-step-size="
	progToken     = "+prog"
)

// Args is the result of selecting the tokens meant for one bridge instance
// from the simulation's command line.
type Args struct {
	StepSize uint32

	// the tokens to pass to the engine. the first token is always
	// ProgramName
	Tokens []string
}

// ParseArgs selects the tokens for the bridge with the index.
//
// A +progN= token, where N is the index, is split on spaces and each part is
// added to the token list. +prog tokens for other indexes are discarded. All
// other tokens are passed through unchanged, including the
// +fesvr-step-size= token, which also sets the step budget.
func ParseArgs(index int, args []string) Args {
	prog := fmt.Sprintf("%s%d=", progToken, index)

	a := Args{
		StepSize: DefaultStepSize,
		Tokens:   []string{ProgramName},
	}

	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, stepSizeToken); ok {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				logger.Logf(logger.Allow, "dmi", "ignoring step size (%s): %v", v, err)
			} else {
				a.StepSize = uint32(n)
			}
		}

		if v, ok := strings.CutPrefix(arg, prog); ok {
			for _, tok := range strings.Split(v, " ") {
				if tok != "" {
					a.Tokens = append(a.Tokens, tok)
				}
			}
		} else if strings.HasPrefix(arg, progToken) {
			// arguments for another engine
		} else {
			a.Tokens = append(a.Tokens, arg)
		}
	}

	logger.Logf(logger.Allow, "dmi", "command line for program %d. argc=%d: %s", index, len(a.Tokens)-1, strings.Join(a.Tokens[1:], " "))

	return a
}
