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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const modeSeparator = "/"

// Modes handles the command line for programs with modes. The Output field
// should be set before calling Parse() otherwise help messages are lost.
type Modes struct {
	Output io.Writer

	// a new flag set is created by NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes added since the most recent call to NewMode()
	subModes []string

	// every mode selected since NewArgs()
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and begins a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode begins a new mode. Flags and sub-modes added before the call are
// forgotten.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AdditionalHelp is printed after the list of flags when help is requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubModes adds modes that can be selected by the next call to Parse().
// The first mode added is the default.
func (md *Modes) AddSubModes(modes ...string) {
	for _, m := range modes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing
	ParseContinue ParseResult = iota

	// help was requested and has been printed to Output
	ParseHelp

	// the error returned by Parse() says what was wrong
	ParseError
)

// Parse the flags for the current mode and select the next mode if there
// are sub-modes.
func (md *Modes) Parse() (ParseResult, error) {
	// the flag package's own messages are not used
	md.flags.SetOutput(io.Discard)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.help()
			return ParseHelp, nil
		}
		return ParseError, err
	}

	// the remaining arguments are relative to the end of the flags
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = m
				md.argsIdx++
				break // for loop
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// help prints the flag defaults followed by the sub-modes and any additional
// help.
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var s strings.Builder

	if md.Path() == "" {
		s.WriteString("Usage:\n")
	} else {
		s.WriteString(fmt.Sprintf("Usage for %s mode:\n", md.Path()))
	}

	var defaults strings.Builder
	md.flags.SetOutput(&defaults)
	md.flags.PrintDefaults()
	s.WriteString(defaults.String())

	if len(md.subModes) > 0 {
		if defaults.Len() > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("  modes: %s (default %s)\n", strings.Join(md.subModes, ", "), md.subModes[0]))
	}

	if defaults.Len() == 0 && len(md.subModes) == 0 && md.additionalHelp == "" {
		s.Reset()
		s.WriteString("No help available")
		if md.Path() != "" {
			s.WriteString(fmt.Sprintf(" for %s mode", md.Path()))
		}
		s.WriteString("\n")
	}

	if md.additionalHelp != "" {
		s.WriteString("\n")
		s.WriteString(md.additionalHelp)
		s.WriteString("\n")
	}

	io.WriteString(md.Output, s.String())
}

// RemainingArgs returns the arguments that are not flags or a mode name.
func (md *Modes) RemainingArgs() []string {
	return md.args[min(md.argsIdx, len(md.args)):]
}

// GetArg returns the numbered argument from RemainingArgs(). It returns the
// empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddAddress flag for the next call to Parse(). The value can be given in
// decimal, or in hexadecimal with the 0x prefix.
func (md *Modes) AddAddress(name string, value uint64, usage string) *uint64 {
	v := value
	md.flags.Func(name, fmt.Sprintf("%s (default %#x)", usage, value), func(s string) error {
		a, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		v = a
		return nil
	})
	return &v
}

// Visit calls fn with the name of every flag that was set by Parse().
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
