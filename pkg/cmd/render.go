/*
Copyright 2026 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"io"
	"os"

	pt "github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

const (
	minTableWidth     = 40
	maxTableWidth     = 200
	defaultTableWidth = 120
)

// getTerminalWidth returns the width of stdout clamped to a sane range, or
// a default when stdout is not a terminal.
func getTerminalWidth() int {
	fd := int(os.Stdout.Fd()) // #nosec G115 - file descriptors fit in an int
	if !term.IsTerminal(fd) {
		return defaultTableWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return defaultTableWidth
	}
	switch {
	case width < minTableWidth:
		return minTableWidth
	case width > maxTableWidth:
		return maxTableWidth
	}
	return width
}

// renderSummary prints the per-account counts of a run followed by the
// report file locations.
func renderSummary(w io.Writer, res *Result, width int) {
	s := core.Summarize(res.Assets)

	t := pt.NewWriter()
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.SetAllowedRowLength(width)
	t.SetOutputMirror(w)
	t.AppendHeader(pt.Row{"Account", "VMs without agent"})
	for _, a := range s.Accounts {
		t.AppendRow(pt.Row{a.Key, a.Count})
	}
	t.AppendFooter(pt.Row{"Total", s.TotalAssets})
	t.Render()

	_, _ = fmt.Fprintf(w, "\nRegions: %d\n", s.RegionCount)
	if res.CSVWritten {
		_, _ = fmt.Fprintf(w, "CSV:  %s\n", res.CSVPath)
	}
	_, _ = fmt.Fprintf(w, "HTML: %s\n", res.HTMLPath)
}
