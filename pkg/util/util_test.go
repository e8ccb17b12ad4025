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

package util

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func TestParseProviderID(t *testing.T) {
	tests := map[string]struct {
		in    string
		cp    string
		parts []string
	}{
		"ec2 instance": {"aws:///eu-west-1/i-0def", "aws", []string{"", "eu-west-1", "i-0def"}},
		"gce instance": {"gce://proj-a/us-central1-a/gce-1", "gce", []string{"proj-a", "us-central1-a", "gce-1"}},
		"azure vm":     {"azure:///sub-1/westeurope/vm-guid", "azure", []string{"", "sub-1", "westeurope", "vm-guid"}},
		"no scheme":    {"i-0abc", "i-0abc", nil},
		"single part":  {"test://only", "test", []string{"only"}},
		"empty":        {"", "", nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cp, parts := ParseProviderID(tt.in)
			if cp != tt.cp {
				t.Errorf("ParseProviderID(%q) provider = %q, want %q", tt.in, cp, tt.cp)
			}
			if len(parts) != len(tt.parts) {
				t.Fatalf("ParseProviderID(%q) = %v, want %v", tt.in, parts, tt.parts)
			}
			for i := range parts {
				if parts[i] != tt.parts[i] {
					t.Errorf("ParseProviderID(%q) part %d = %q, want %q", tt.in, i, parts[i], tt.parts[i])
				}
			}
		})
	}
}

func TestSetupLoggerFormat(t *testing.T) {
	defer viper.Set("log-format", "text")

	for format, wantJSON := range map[string]bool{"json": true, "JSON": true, "text": false, "": false, "xml": false} {
		viper.Set("log-format", format)
		if err := SetupLogger(); err != nil {
			t.Fatalf("SetupLogger() with format %q returned error: %v", format, err)
		}
		switch f := log.StandardLogger().Formatter.(type) {
		case *log.JSONFormatter:
			if !wantJSON {
				t.Errorf("format %q gave a JSON formatter", format)
			}
		case *log.TextFormatter:
			if wantJSON {
				t.Errorf("format %q gave a text formatter", format)
			}
			if !f.DisableLevelTruncation {
				t.Errorf("format %q: level names should not be truncated", format)
			}
		default:
			t.Errorf("format %q gave unexpected formatter %T", format, f)
		}
	}
}

func TestSetupLoggerLevel(t *testing.T) {
	defer viper.Set("log-level", "")

	viper.Set("log-level", "debug")
	if err := SetupLogger(); err != nil {
		t.Fatalf("SetupLogger() returned error: %v", err)
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}

	viper.Set("log-level", "")
	if err := SetupLogger(); err != nil {
		t.Fatalf("SetupLogger() returned error: %v", err)
	}
	if log.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info by default", log.GetLevel())
	}

	viper.Set("log-level", "loud")
	if err := SetupLogger(); err == nil {
		t.Errorf("SetupLogger() expected error for invalid level")
	}
}

func TestFormatProviderID(t *testing.T) {
	tests := []struct {
		cp    string
		parts []string
		want  string
	}{
		{"aws", []string{"", "us-east-1", "i-0abc"}, "aws:///us-east-1/i-0abc"},
		{"gce", []string{"proj", "us-central1-a", "vm-1"}, "gce://proj/us-central1-a/vm-1"},
	}
	for _, tt := range tests {
		got := FormatProviderID(tt.cp, tt.parts...)
		if got != tt.want {
			t.Errorf("FormatProviderID() = %q, want %q", got, tt.want)
		}
		cp, parts := ParseProviderID(got)
		if cp != tt.cp || len(parts) != len(tt.parts) {
			t.Errorf("round trip of %q = %q %v", got, cp, parts)
		}
	}
}
