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

//go:build linux || darwin || freebsd || netbsd || openbsd

package main

import (
	"io"
	"os"

	"github.com/jetsetilly/dmibridge/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// echoWriter returns a writer for the echoed log. if the file is a terminal
// the log is colourised.
func echoWriter(f *os.File) io.Writer {
	var attr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &attr); err != nil {
		return f
	}
	return logger.NewColorizer(f)
}
