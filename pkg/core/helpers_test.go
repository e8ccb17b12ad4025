package core

import (
	"bytes"
	"encoding/json"
	"testing"
)

// mustHost decodes a HostAsset JSON object the same way the platform
// client does (numbers kept as json.Number).
func mustHost(t *testing.T, raw string) Host {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var h Host
	if err := dec.Decode(&h); err != nil {
		t.Fatalf("decode host fixture: %v", err)
	}
	return h
}

const awsRunningHost = `{
  "id": 123456789,
  "name": "web-01",
  "created": "2026-01-02T03:04:05Z",
  "modified": "2026-02-03T04:05:06Z",
  "trackingMethod": "INSTANCE_ID",
  "sourceInfo": {"list": [
    {"AssetSource": {}},
    {"Ec2AssetSourceSimple": {
      "accountId": "111122223333",
      "region": "us-east-1",
      "instanceId": "i-0abc",
      "instanceType": "t3.micro",
      "instanceState": "running",
      "privateIpAddress": "10.0.0.5",
      "publicIpAddress": "54.1.2.3",
      "ec2InstanceTags": {"tags": {"list": [
        {"EC2Tags": {"key": "env", "value": "prod"}},
        {"EC2Tags": {"key": "team", "value": "core"}},
        {"EC2Tags": {"key": "env", "value": "staging"}}
      ]}}
    }},
    {"Ec2AssetSourceSimple": {"accountId": "999999999999", "region": "eu-west-1"}}
  ]}
}`

const azureHost = `{
  "id": "az-1",
  "name": "vm-az",
  "cloudProvider": "AZURE",
  "sourceInfo": {"list": [
    {"AzureAssetSourceSimple": {
      "subscriptionId": "sub-1",
      "location": "westeurope",
      "vmId": "vm-guid",
      "vmSize": "Standard_B2s",
      "state": "DEALLOCATED",
      "privateIpAddress": "10.1.0.4",
      "azureVmTags": {"tags": {"list": [{"AzureTags": {"key": "owner", "value": "ops"}}]}}
    }}
  ]}
}`

const gcpHost = `{
  "id": 42,
  "name": "gce-1",
  "sourceInfo": {"list": [
    {"QualysAssetSource": {}},
    {"GcpAssetSourceSimple": {
      "projectId": "proj-a",
      "zone": "us-central1-a",
      "instanceId": 987654321,
      "machineType": "e2-small",
      "state": "RUNNING",
      "labels": {"list": [{"GcpLabels": {"key": "app", "value": "api"}}]}
    }}
  ]}
}`
