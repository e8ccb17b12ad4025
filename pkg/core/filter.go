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

package core

import (
	"strings"
)

// DropReason explains why a host record was excluded.
type DropReason string

const (
	ReasonHasAgent   DropReason = "has agent"
	ReasonTerminated DropReason = "terminated"
	ReasonIncomplete DropReason = "incomplete cloud info"
)

// Decision is the outcome of evaluating one host record.
type Decision struct {
	Keep   bool
	Reason DropReason
}

var keep = Decision{Keep: true}

func drop(r DropReason) Decision {
	return Decision{Reason: r}
}

// HasAgent reports whether the record carries agent installation evidence.
func HasAgent(h Host) bool {
	v, ok := h["agentInfo"]
	return ok && !isEmptyValue(v)
}

// Evaluate decides whether a host record belongs in the report. The checks
// run in a fixed order and the first match wins.
func Evaluate(h Host, f CloudFields) Decision {
	if HasAgent(h) {
		return drop(ReasonHasAgent)
	}
	if strings.EqualFold(f.State, StateTerminated) {
		return drop(ReasonTerminated)
	}
	if f.AccountID == "" {
		return drop(ReasonIncomplete)
	}
	return keep
}

type sourceLabel struct {
	kind string
	name string
	icon string
}

// sourceLabels is ordered; SourceGeneric is deliberately absent.
var sourceLabels = []sourceLabel{
	{kind: SourceEC2, name: "EC2 Connector", icon: "🔌"},
	{kind: SourceAzure, name: "Azure Connector", icon: "🔌"},
	{kind: SourceGCP, name: "GCP Connector", icon: "🔌"},
	{kind: SourceAgent, name: "Cloud Agent", icon: "🤖"},
	{kind: SourceScanner, name: "Scanner", icon: "🔍"},
}

// trackingSources maps a tracking method to a source name when the record
// has no recognizable source info.
var trackingSources = map[string]string{
	"QAGENT":      "Cloud Agent",
	"INSTANCE_ID": "EC2 Connector",
	"VM_ID":       "Azure Connector",
	"IP":          "Scanner",
	"DNS":         "Scanner",
	"NETBIOS":     "Scanner",
	"EC2":         "EC2 Connector",
	"GCP":         "GCP Connector",
	"AZURE":       "Azure Connector",
}

// SourceLabel builds the provenance label of a host record, e.g.
// "🔌 EC2 Connector, 🔍 Scanner".
func SourceLabel(h Host) string {
	var found []sourceLabel
	seen := make(map[string]bool)
	for _, item := range LookupList(h, sourceInfoList) {
		obj := asObject(item)
		if obj == nil {
			continue
		}
		for _, l := range sourceLabels {
			if _, ok := obj[l.kind]; !ok || seen[l.name] {
				continue
			}
			seen[l.name] = true
			found = append(found, l)
		}
	}

	if len(found) == 0 {
		tm := LookupString(h, "trackingMethod")
		if name, ok := trackingSources[tm]; ok {
			return name
		}
		return tm
	}

	parts := make([]string, 0, len(found))
	for _, l := range found {
		parts = append(parts, l.icon+" "+l.name)
	}
	return strings.Join(parts, ", ")
}
