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

package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// Meta is the run information shown in the report header.
type Meta struct {
	Platform  string
	Cloud     string
	Version   string
	RunID     string
	Generated time.Time
}

// row is one table row as displayed.
type row struct {
	Name         string
	AccountID    string
	AccountAlias string
	AccountKey   string
	Region       string
	InstanceID   string
	InstanceType string
	PrivateIP    string
	State        string
	StateClass   string
	Source       string
	Created      string
	LastUpdated  string
}

type page struct {
	Meta      Meta
	Generated string
	Summary   core.Summary
	Rows      []row
}

// WriteHTML renders the interactive HTML report. It is valid for an empty
// asset list.
func WriteHTML(w io.Writer, assets []core.NormalizedAsset, meta Meta) error {
	p := page{
		Meta:      meta,
		Generated: meta.Generated.Format("2006-01-02 15:04:05"),
		Summary:   core.Summarize(assets),
		Rows:      make([]row, 0, len(assets)),
	}
	for _, a := range assets {
		p.Rows = append(p.Rows, row{
			Name:         a.Name,
			AccountID:    a.AccountID,
			AccountAlias: a.AccountAlias,
			AccountKey:   a.AccountKey(),
			Region:       a.Region,
			InstanceID:   a.InstanceID,
			InstanceType: a.InstanceType,
			PrivateIP:    a.PrivateIP,
			State:        a.State,
			StateClass:   StateClass(a),
			Source:       a.Source,
			Created:      day(a.Created),
			LastUpdated:  day(a.LastUpdated),
		})
	}
	return reportTemplate.Execute(w, p)
}

// WriteHTMLFile writes the HTML report to path, replacing any existing file.
func WriteHTMLFile(path string, assets []core.NormalizedAsset, meta Meta) error {
	// #nosec G304 - the output path is chosen by the operator
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteHTML(f, assets, meta); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// StateClass returns the CSS class for an asset's state cell.
func StateClass(a core.NormalizedAsset) string {
	switch {
	case a.StateIs(core.StateRunning):
		return "state-running"
	case a.StateIs(core.StateStopped), a.StateIs(core.StateTerminated), a.StateIs(core.StateDeallocated):
		return "state-stopped"
	}
	return ""
}

// day truncates an ISO-8601 timestamp to its date.
func day(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
