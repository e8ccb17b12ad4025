package core

import (
	"testing"
)

func TestEvaluate_Order(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Decision
	}{
		{
			name: "agent wins over terminated and missing account",
			raw:  `{"agentInfo": {"agentVersion": "5.0"}, "sourceInfo": {"list": [{"Ec2AssetSourceSimple": {"instanceState": "TERMINATED"}}]}}`,
			want: Decision{Reason: ReasonHasAgent},
		},
		{
			name: "terminated wins over missing account",
			raw:  `{"sourceInfo": {"list": [{"Ec2AssetSourceSimple": {"instanceState": "terminated"}}]}}`,
			want: Decision{Reason: ReasonTerminated},
		},
		{
			name: "missing account",
			raw:  `{"sourceInfo": {"list": [{"Ec2AssetSourceSimple": {"instanceState": "RUNNING"}}]}}`,
			want: Decision{Reason: ReasonIncomplete},
		},
		{
			name: "empty agentInfo is not an agent",
			raw:  `{"agentInfo": {}, "sourceInfo": {"list": [{"Ec2AssetSourceSimple": {"accountId": "1", "instanceState": "STOPPED"}}]}}`,
			want: Decision{Keep: true},
		},
		{
			name: "null agentInfo is not an agent",
			raw:  `{"agentInfo": null, "sourceInfo": {"list": [{"Ec2AssetSourceSimple": {"accountId": "1"}}]}}`,
			want: Decision{Keep: true},
		},
		{
			name: "no source info at all",
			raw:  `{"name": "orphan"}`,
			want: Decision{Reason: ReasonIncomplete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustHost(t, tt.raw)
			got := Evaluate(h, MapCloudFields(ProviderAWS, h))
			if got != tt.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHasAgent(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{}`, false},
		{`{"agentInfo": null}`, false},
		{`{"agentInfo": ""}`, false},
		{`{"agentInfo": false}`, false},
		{`{"agentInfo": 0}`, false},
		{`{"agentInfo": []}`, false},
		{`{"agentInfo": {}}`, false},
		{`{"agentInfo": {"agentId": "abc"}}`, true},
		{`{"agentInfo": "yes"}`, true},
		{`{"agentInfo": 1}`, true},
	}
	for _, tt := range tests {
		if got := HasAgent(mustHost(t, tt.raw)); got != tt.want {
			t.Errorf("HasAgent(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "connector and scanner in list order",
			raw:  `{"sourceInfo": {"list": [{"Ec2AssetSourceSimple": {}}, {"QualysAssetSource": {}}]}}`,
			want: "🔌 EC2 Connector, 🔍 Scanner",
		},
		{
			name: "duplicates collapse to first occurrence",
			raw:  `{"sourceInfo": {"list": [{"QualysAssetSource": {}}, {"GcpAssetSourceSimple": {}}, {"QualysAssetSource": {}}]}}`,
			want: "🔍 Scanner, 🔌 GCP Connector",
		},
		{
			name: "multi-key entry follows label table order",
			raw:  `{"sourceInfo": {"list": [{"QualysAssetSource": {}, "Ec2AssetSourceSimple": {}}]}}`,
			want: "🔌 EC2 Connector, 🔍 Scanner",
		},
		{
			name: "generic source is not labelled",
			raw:  `{"sourceInfo": {"list": [{"AssetSource": {}}, {"AgentAssetSource": {}}]}}`,
			want: "🤖 Cloud Agent",
		},
		{
			name: "tracking method fallback",
			raw:  `{"trackingMethod": "INSTANCE_ID", "sourceInfo": {"list": [{"AssetSource": {}}]}}`,
			want: "EC2 Connector",
		},
		{
			name: "unknown tracking method is passed through",
			raw:  `{"trackingMethod": "WEIRD"}`,
			want: "WEIRD",
		},
		{
			name: "nothing known",
			raw:  `{}`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceLabel(mustHost(t, tt.raw)); got != tt.want {
				t.Errorf("SourceLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
