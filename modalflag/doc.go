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

// Package modalflag wraps the flag package from the standard library and adds
// the idea of program modes. A mode is a command line argument that selects
// what the program does and each mode has its own set of flags.
//
// Arguments are given once with NewArgs(). Each call to Parse() consumes the
// flags for the current mode and, if sub-modes have been added, the name of
// the next mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MAP")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		steps := md.AddInt("steps", 0, "maximum number of steps")
//		md.Parse()
//	}
//
// The first sub-mode is the default and is selected if the next argument is
// not the name of a mode. Mode names are not case sensitive.
//
// Arguments that follow the flags, and the mode name if there is one, are
// available with RemainingArgs(). Parsing of flags stops at the first argument
// that does not begin with a hyphen. This means that simulator plusargs such
// as +loadmem-verify are always remaining arguments.
package modalflag
