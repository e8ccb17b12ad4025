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

// NormalizeStats counts what happened to a batch of host records.
type NormalizeStats struct {
	Total   int
	Kept    int
	Dropped map[DropReason]int
}

// NormalizeHost maps a raw host record into a NormalizedAsset and decides
// whether it is kept. The returned asset is only meaningful when the
// decision keeps it. Account aliases are not resolved here.
func NormalizeHost(p CloudProvider, h Host) (NormalizedAsset, Decision) {
	if HasAgent(h) {
		return NormalizedAsset{}, drop(ReasonHasAgent)
	}

	f := MapCloudFields(p, h)
	if d := Evaluate(h, f); !d.Keep {
		return NormalizedAsset{}, d
	}

	cloudProvider := LookupString(h, "cloudProvider")
	if cloudProvider == "" {
		cloudProvider = p.String()
	}

	return NormalizedAsset{
		AssetID:       LookupString(h, "id"),
		Name:          LookupString(h, "name"),
		CloudProvider: cloudProvider,
		AccountID:     f.AccountID,
		Region:        f.Region,
		InstanceID:    f.InstanceID,
		InstanceType:  f.InstanceType,
		PrivateIP:     f.PrivateIP,
		PublicIP:      f.PublicIP,
		State:         f.State,
		Created:       LookupString(h, "created"),
		LastUpdated:   LookupString(h, "modified"),
		Source:        SourceLabel(h),
		Tags:          f.Tags,
	}, keep
}

// NormalizeHosts runs NormalizeHost over a batch, preserving input order
// for the kept assets. It performs no I/O.
func NormalizeHosts(p CloudProvider, hosts []Host) ([]NormalizedAsset, NormalizeStats) {
	stats := NormalizeStats{
		Total:   len(hosts),
		Dropped: make(map[DropReason]int),
	}
	assets := make([]NormalizedAsset, 0, len(hosts))
	for _, h := range hosts {
		a, d := NormalizeHost(p, h)
		if !d.Keep {
			stats.Dropped[d.Reason]++
			continue
		}
		assets = append(assets, a)
	}
	stats.Kept = len(assets)
	return assets, stats
}

// DropTerminated removes assets whose state is TERMINATED. It is used after
// state has been refreshed from a source other than the platform.
func DropTerminated(assets []NormalizedAsset) ([]NormalizedAsset, int) {
	out := assets[:0]
	removed := 0
	for _, a := range assets {
		if a.StateIs(StateTerminated) {
			removed++
			continue
		}
		out = append(out, a)
	}
	return out, removed
}
