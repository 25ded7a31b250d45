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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/jetsetilly/dmibridge/curated"
)

// Profile specifies which profiles are to be recorded by RunProfiler().
type Profile int

// ProfileNone records no profiles.
const ProfileNone Profile = 0

// List of valid Profile values. Values can be combined.
const (
	ProfileCPU Profile = 1 << iota
	ProfileMem
	ProfileTrace
)

func (p Profile) String() string {
	if p == ProfileNone {
		return "none"
	}

	var s []string
	if p&ProfileCPU == ProfileCPU {
		s = append(s, "cpu")
	}
	if p&ProfileMem == ProfileMem {
		s = append(s, "mem")
	}
	if p&ProfileTrace == ProfileTrace {
		s = append(s, "trace")
	}
	return strings.Join(s, ",")
}

// Patterns for curated errors.
const (
	UnknownProfile = "performance: unknown profile (%s)"
	ProfileError   = "performance: %v"
)

// ParseProfile converts a comma separated list of profile names to a Profile
// value. Valid names are cpu, mem, trace and none. Names are not case
// sensitive.
func ParseProfile(s string) (Profile, error) {
	var p Profile
	for _, n := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "", "none":
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		case "trace":
			p |= ProfileTrace
		default:
			return ProfileNone, curated.Errorf(UnknownProfile, n)
		}
	}
	return p, nil
}

// ProfileFilename returns the name of the file written by RunProfiler() for
// the tag and a single profile type.
func ProfileFilename(tag string, p Profile) string {
	return fmt.Sprintf("%s_%s.profile", tag, p)
}

// RunProfiler runs the function, recording the profiles requested. The error
// from run is returned in preference to any error from the profiler.
func RunProfiler(profile Profile, tag string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(ProfileFilename(tag, ProfileCPU))
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(ProfileFilename(tag, ProfileTrace))
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer f.Close()

		err = trace.Start(f)
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer trace.Stop()
	}

	if profile&ProfileMem == ProfileMem {
		defer func() {
			f, err := os.Create(ProfileFilename(tag, ProfileMem))
			if err != nil {
				if rerr == nil {
					rerr = curated.Errorf(ProfileError, err)
				}
				return
			}
			defer f.Close()

			runtime.GC()
			err = pprof.WriteHeapProfile(f)
			if err != nil && rerr == nil {
				rerr = curated.Errorf(ProfileError, err)
			}
		}()
	}

	return run()
}
