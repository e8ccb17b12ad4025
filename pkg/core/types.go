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

// Package core contains domain types and the filter/map/enrich logic for
// agentless that are independent of any particular CLI, API client or
// output format.
package core

import (
	"fmt"
	"strings"
)

// CloudProvider identifies the cloud an asset lives in.
type CloudProvider string

const (
	ProviderAWS   CloudProvider = "AWS"
	ProviderAzure CloudProvider = "AZURE"
	ProviderGCP   CloudProvider = "GCP"
)

// CloudProviders lists the supported providers in display order.
var CloudProviders = []CloudProvider{ProviderAWS, ProviderAzure, ProviderGCP}

// ParseCloudProvider converts a case-insensitive name into a CloudProvider.
func ParseCloudProvider(s string) (CloudProvider, error) {
	p := CloudProvider(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case ProviderAWS, ProviderAzure, ProviderGCP:
		return p, nil
	}
	return "", fmt.Errorf("unknown cloud provider %q (valid: AWS, AZURE, GCP)", s)
}

func (p CloudProvider) String() string {
	return string(p)
}

// Host is a raw host asset record as decoded from the platform's JSON
// response. Values are the generic tree produced by encoding/json
// (map[string]any, []any, string, json.Number, bool, nil).
type Host map[string]any

// NormalizedAsset is the canonical, provider-independent record of a VM
// without an agent.
type NormalizedAsset struct {
	AssetID       string            `json:"assetId"`
	Name          string            `json:"name"`
	CloudProvider string            `json:"cloudProvider"`
	AccountID     string            `json:"accountId"`
	AccountAlias  string            `json:"accountAlias,omitempty"`
	Region        string            `json:"region,omitempty"`
	InstanceID    string            `json:"instanceId,omitempty"`
	InstanceType  string            `json:"instanceType,omitempty"`
	PrivateIP     string            `json:"privateIp,omitempty"`
	PublicIP      string            `json:"publicIp,omitempty"`
	State         string            `json:"state,omitempty"`
	Created       string            `json:"created,omitempty"`
	LastUpdated   string            `json:"lastUpdated,omitempty"`
	Source        string            `json:"source,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

// AccountKey is the label used to group assets by account: the account id,
// followed by the alias in parentheses when one is known.
func (a NormalizedAsset) AccountKey() string {
	if a.AccountAlias != "" {
		return fmt.Sprintf("%s (%s)", a.AccountID, a.AccountAlias)
	}
	return a.AccountID
}

// StateIs reports whether the asset state equals s, ignoring case.
func (a NormalizedAsset) StateIs(s string) bool {
	return strings.EqualFold(a.State, s)
}

// Instance states with special meaning for filtering and presentation.
const (
	StateRunning     = "RUNNING"
	StateStopped     = "STOPPED"
	StateTerminated  = "TERMINATED"
	StateDeallocated = "DEALLOCATED"
)

// AccountAliasMap maps an account, subscription or project id to a human
// readable alias.
type AccountAliasMap map[string]string
