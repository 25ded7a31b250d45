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

//go:build statsview

package statsview

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/dmibridge/logger"
)

// sample the runtime every half second and keep a minute of samples.
const (
	interval  = 500
	maxPoints = 120
)

// Launch starts the statistics server on a new goroutine. The location of the
// graphs is written to output. The returned function stops the server.
func Launch(output io.Writer) func() {
	viewer.SetConfiguration(
		viewer.WithAddr(Address),
		viewer.WithInterval(interval),
		viewer.WithMaxPoints(maxPoints),
	)

	mgr := statsview.New()
	go func() {
		if err := mgr.Start(); err != nil && err != http.ErrServerClosed {
			logger.Log(logger.Allow, "statsview", err)
		}
	}()

	fmt.Fprintf(output, "runtime graphs at http://%s/debug/statsview\n", Address)

	return mgr.Stop
}

// Available returns true if the program was built with the statsview tag.
func Available() bool {
	return true
}
