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

// Package version reports the version of the program. A release build sets
// the version number with the linker:
//
//	go build -ldflags "-X github.com/jetsetilly/dmibridge/version.number=v1.0.0"
//
// Other builds are described as "unreleased" if there is version control
// information in the binary, or "local" if there is not.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name of the program.
const ApplicationName = "dmibridge"

// set by the linker for release builds
var number string

// Info describes the build.
type Info struct {
	Version  string
	Revision string
	Release  bool
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

// Version returns information about the build.
func Version() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return describe(number, nil)
	}
	return describe(number, info.Settings)
}

func describe(number string, settings []debug.BuildSetting) Info {
	var vcs bool
	var revision string
	var modified bool

	for _, s := range settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	i := Info{
		Version:  number,
		Revision: revision,
		Release:  number != "",
	}

	if i.Revision == "" {
		i.Revision = "no revision information"
	} else if modified {
		i.Revision += "+dirty"
	}

	if !i.Release {
		if vcs {
			i.Version = "unreleased"
		} else {
			i.Version = "local"
		}
	}

	return i
}
