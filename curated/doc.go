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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function and remember the
// pattern they were created with. The pattern is what identifies the error,
// not the formatted message.
//
//	const NoMemory = "dmi: loadmem %s on a target without memory"
//
//	e := curated.Errorf(NoMemory, "read")
//	if curated.Is(e, NoMemory) {
//		fmt.Println("true")
//	}
//
// Has() is similar to Is() but looks for the pattern anywhere in the chain of
// curated errors that were passed as values to Errorf().
//
// Curated errors are also used as panic values for conditions that the
// bridge considers fatal. A test can recover() the value and check it with
// Is() in the usual way.
//
// The Error() function normalises the message so that adjacent duplicate
// parts of the chain are removed. Parts are separated by the sub-string ": ".
// So this:
//
//	curated.Errorf("dmi: %v", curated.Errorf("dmi: engine failed"))
//
// prints "dmi: engine failed" and not "dmi: dmi: engine failed".
package curated
