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

// Source info kinds found in a host record's sourceInfo list.
const (
	SourceEC2      = "Ec2AssetSourceSimple"
	SourceAzure    = "AzureAssetSourceSimple"
	SourceGCP      = "GcpAssetSourceSimple"
	SourceAgent    = "AgentAssetSource"
	SourceScanner  = "QualysAssetSource"
	SourceGeneric  = "AssetSource"
	sourceInfoList = "sourceInfo.list"
)

// cloudSource describes where a cloud-specific source entry keeps its
// tags. Entries are consulted in this order within a single list item.
type cloudSource struct {
	kind       string
	tagList    string
	tagWrapper string
}

var cloudSources = []cloudSource{
	{kind: SourceEC2, tagList: "ec2InstanceTags.tags.list", tagWrapper: "EC2Tags"},
	{kind: SourceAzure, tagList: "azureVmTags.tags.list", tagWrapper: "AzureTags"},
	{kind: SourceGCP, tagList: "labels.list", tagWrapper: "GcpLabels"},
}

// fieldMapping names the keys of a cloud source entry that hold each
// normalized field for one provider.
type fieldMapping struct {
	accountID    string
	region       string
	instanceID   string
	instanceType string
	state        string
}

var fieldMappings = map[CloudProvider]fieldMapping{
	ProviderAWS: {
		accountID:    "accountId",
		region:       "region",
		instanceID:   "instanceId",
		instanceType: "instanceType",
		state:        "instanceState",
	},
	ProviderAzure: {
		accountID:    "subscriptionId",
		region:       "location",
		instanceID:   "vmId",
		instanceType: "vmSize",
		state:        "state",
	},
	ProviderGCP: {
		accountID:    "projectId",
		region:       "zone",
		instanceID:   "instanceId",
		instanceType: "machineType",
		state:        "state",
	},
}

// CloudFields is the cloud-specific subset of a NormalizedAsset.
type CloudFields struct {
	AccountID    string
	Region       string
	InstanceID   string
	InstanceType string
	PrivateIP    string
	PublicIP     string
	State        string
	Tags         map[string]string
}

// MapCloudFields extracts the cloud-specific fields of a host record for
// the given provider. It never fails: anything missing maps to "".
func MapCloudFields(p CloudProvider, h Host) CloudFields {
	entry, src := selectCloudSource(h)
	if entry == nil {
		return CloudFields{}
	}

	f := CloudFields{
		PrivateIP: LookupString(entry, "privateIpAddress"),
		PublicIP:  LookupString(entry, "publicIpAddress"),
		Tags:      extractTags(entry, src),
	}
	if m, ok := fieldMappings[p]; ok {
		f.AccountID = LookupString(entry, m.accountID)
		f.Region = LookupString(entry, m.region)
		f.InstanceID = LookupString(entry, m.instanceID)
		f.InstanceType = LookupString(entry, m.instanceType)
		f.State = LookupString(entry, m.state)
	}
	return f
}

// selectCloudSource returns the first cloud-specific entry of the host's
// source list. Later entries are ignored even if they carry more data.
func selectCloudSource(h Host) (map[string]any, cloudSource) {
	for _, item := range LookupList(h, sourceInfoList) {
		obj := asObject(item)
		if obj == nil {
			continue
		}
		for _, src := range cloudSources {
			if v, ok := obj[src.kind]; ok {
				entry := asObject(v)
				if entry == nil {
					entry = map[string]any{}
				}
				return entry, src
			}
		}
	}
	return nil, cloudSource{}
}

func extractTags(entry map[string]any, src cloudSource) map[string]string {
	var tags map[string]string
	for _, item := range LookupList(entry, src.tagList) {
		t := LookupObject(item, src.tagWrapper)
		if t == nil {
			continue
		}
		if tags == nil {
			tags = make(map[string]string)
		}
		tags[LookupString(t, "key")] = LookupString(t, "value")
	}
	return tags
}
