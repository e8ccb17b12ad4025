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

package qualys

import (
	"encoding/xml"
	"time"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// SearchLimit is the maximum number of host assets a single search returns.
const SearchLimit = 1000

// CutoffLayout is the timestamp format the search API expects.
const CutoffLayout = "2006-01-02T15:04:05Z"

// HostFilter selects the host assets to search for. Zero hour values
// disable the corresponding criterion.
type HostFilter struct {
	Cloud        core.CloudProvider
	CreatedHours int
	UpdatedHours int
}

type serviceRequest struct {
	XMLName     xml.Name    `xml:"ServiceRequest"`
	Preferences preferences `xml:"preferences"`
	Criteria    []criterion `xml:"filters>Criteria"`
}

type preferences struct {
	LimitResults int `xml:"limitResults"`
}

type criterion struct {
	Field    string `xml:"field,attr"`
	Operator string `xml:"operator,attr"`
	Value    string `xml:",chardata"`
}

// criteria returns the search criteria relative to now.
func (f HostFilter) criteria(now time.Time) []criterion {
	c := []criterion{{Field: "cloudProviderType", Operator: "EQUALS", Value: f.Cloud.String()}}
	if f.CreatedHours > 0 {
		c = append(c, criterion{Field: "created", Operator: "GREATER", Value: Cutoff(now, f.CreatedHours)})
	}
	if f.UpdatedHours > 0 {
		c = append(c, criterion{Field: "updated", Operator: "GREATER", Value: Cutoff(now, f.UpdatedHours)})
	}
	return c
}

// Marshal renders the XML search request.
func (f HostFilter) Marshal(now time.Time) ([]byte, error) {
	body, err := xml.MarshalIndent(serviceRequest{
		Preferences: preferences{LimitResults: SearchLimit},
		Criteria:    f.criteria(now),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Cutoff returns now minus hours in UTC, formatted with CutoffLayout.
func Cutoff(now time.Time, hours int) string {
	return now.Add(-time.Duration(hours) * time.Hour).UTC().Format(CutoffLayout)
}
