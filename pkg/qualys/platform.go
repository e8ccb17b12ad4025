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

// Package qualys is a small client for the Qualys gateway and QPS REST
// APIs used to find cloud VMs without an agent.
package qualys

import (
	"fmt"
	"sort"
	"strings"
)

// Platform is a Qualys pod. Gateway serves token-authenticated APIs and API
// serves the Basic-authenticated QPS APIs. Both are base URLs without a
// trailing slash.
type Platform struct {
	Name    string
	Gateway string
	API     string
}

var platforms = map[string]Platform{
	"US1": pod("US1", "qg1.apps.qualys.com"),
	"US2": pod("US2", "qg2.apps.qualys.com"),
	"US3": pod("US3", "qg3.apps.qualys.com"),
	"US4": pod("US4", "qg4.apps.qualys.com"),
	"EU1": pod("EU1", "qg1.apps.qualys.eu"),
	"EU2": pod("EU2", "qg2.apps.qualys.eu"),
	"IN1": pod("IN1", "qg1.apps.qualys.in"),
	"CA1": pod("CA1", "qg1.apps.qualys.ca"),
	"AE1": pod("AE1", "qg1.apps.qualys.ae"),
	"UK1": pod("UK1", "qg1.apps.qualys.co.uk"),
	"AU1": pod("AU1", "qg1.apps.qualys.com.au"),
}

func pod(name, domain string) Platform {
	return Platform{
		Name:    name,
		Gateway: "https://gateway." + domain,
		API:     "https://qualysapi." + domain,
	}
}

// LookupPlatform returns the platform with the given name, ignoring case.
func LookupPlatform(name string) (Platform, error) {
	p, ok := platforms[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Platform{}, fmt.Errorf("unknown platform %q (valid: %s)", name, strings.Join(PlatformNames(), ", "))
	}
	return p, nil
}

// PlatformNames lists the known platform names, sorted.
func PlatformNames() []string {
	names := make([]string, 0, len(platforms))
	for n := range platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
