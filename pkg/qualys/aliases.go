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
	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// assetDataConnector describes where a provider's asset data connector
// keeps the account id and its alias.
type assetDataConnector struct {
	endpoint   string
	wrapperKey string
	idPath     string
	aliasField string
}

var assetDataConnectors = map[core.CloudProvider]assetDataConnector{
	core.ProviderAWS: {
		endpoint:   "awsassetdataconnector",
		wrapperKey: "AwsAssetDataConnector",
		idPath:     "awsAccountId",
		aliasField: "accountAlias",
	},
	core.ProviderAzure: {
		endpoint:   "azureassetdataconnector",
		wrapperKey: "AzureAssetDataConnector",
		idPath:     "authRecord.subscriptionId",
		aliasField: "name",
	},
	core.ProviderGCP: {
		endpoint:   "gcpassetdataconnector",
		wrapperKey: "GcpAssetDataConnector",
		idPath:     "authRecord.projectId",
		aliasField: "name",
	},
}

// ConnectorAliases extracts AWS account aliases from gateway connector
// records. The alias is the first non-empty of accountAlias, name and
// description.
func ConnectorAliases(connectors []map[string]any) core.AliasSource {
	src := core.AliasSource{Name: "connectors"}
	for _, conn := range connectors {
		src.Entries = append(src.Entries, core.AliasEntry{
			ID:    core.LookupString(conn, "awsAccountId"),
			Alias: firstNonEmpty(conn, "accountAlias", "name", "description"),
		})
	}
	return src
}

// AssetDataConnectorAliases extracts aliases from asset data connector
// items as returned by ListAssetDataConnectors.
func AssetDataConnectorAliases(cloud core.CloudProvider, items []map[string]any) core.AliasSource {
	src := core.AliasSource{Name: "asset data connectors"}
	cfg, ok := assetDataConnectors[cloud]
	if !ok {
		return src
	}
	for _, item := range items {
		conn := core.LookupObject(item, cfg.wrapperKey)
		src.Entries = append(src.Entries, core.AliasEntry{
			ID:    core.LookupString(conn, cfg.idPath),
			Alias: firstNonEmpty(conn, cfg.aliasField, "name"),
		})
	}
	return src
}

func firstNonEmpty(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := core.LookupString(obj, k); v != "" {
			return v
		}
	}
	return ""
}
