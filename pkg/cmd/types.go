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
	"net/http"
	"time"

	"gitlab.com/davidxarnold/agentless/pkg/core"
	"gitlab.com/davidxarnold/agentless/pkg/qualys"
)

// DefaultOutputPrefix is the file name prefix used when none is given.
const DefaultOutputPrefix = "cloud_vms_no_agent_report"

// Options holds everything a single run needs.
type Options struct {
	Platform qualys.Platform
	Username string
	Password string
	Cloud    core.CloudProvider

	// CreatedHours and UpdatedHours restrict the search to assets created or
	// updated within the last N hours. Zero disables the restriction.
	CreatedHours int
	UpdatedHours int

	AccountMapPath string
	OutputPrefix   string

	CloudInfo      bool
	CloudCacheTTL  time.Duration
	CloudCacheDisk bool
	AWSLocalAlias  bool

	// HTTPClient is used for platform calls; nil means a default client.
	HTTPClient *http.Client
}

// Result describes what a run produced.
type Result struct {
	RunID      string
	Assets     []core.NormalizedAsset
	Stats      core.NormalizeStats
	Aliases    core.AccountAliasMap
	CSVPath    string
	CSVWritten bool
	HTMLPath   string
}
