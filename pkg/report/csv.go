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

// Package report renders normalized assets as CSV and HTML files.
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// CSVHeaders is the fixed CSV column order.
var CSVHeaders = []string{
	"Asset ID",
	"Name",
	"Cloud Provider",
	"Account ID",
	"Account Alias",
	"Region",
	"Instance ID",
	"Instance Type",
	"Private IP",
	"Public IP",
	"State",
	"Source",
	"Created",
	"Last Updated",
	"Tags",
}

// WriteCSV writes the header and one row per asset, in input order. Every
// field is double-quoted with embedded quotes doubled and rows end in "\n".
func WriteCSV(w io.Writer, assets []core.NormalizedAsset) error {
	bw := bufio.NewWriter(w)
	writeCSVLine(bw, CSVHeaders)
	for _, a := range assets {
		tags, err := tagsJSON(a.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags of asset %s: %w", a.AssetID, err)
		}
		writeCSVLine(bw, []string{
			a.AssetID,
			a.Name,
			a.CloudProvider,
			a.AccountID,
			a.AccountAlias,
			a.Region,
			a.InstanceID,
			a.InstanceType,
			a.PrivateIP,
			a.PublicIP,
			a.State,
			a.Source,
			a.Created,
			a.LastUpdated,
			tags,
		})
	}
	return bw.Flush()
}

// WriteCSVFile writes the CSV report to path. Nothing is written for an
// empty asset list, which is reported as written == false.
func WriteCSVFile(path string, assets []core.NormalizedAsset) (written bool, err error) {
	if len(assets) == 0 {
		return false, nil
	}
	// #nosec G304 - the output path is chosen by the operator
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, assets); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}

func writeCSVLine(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_ = w.WriteByte('"')
		_, _ = w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('\n')
}

// tagsJSON renders tags as a compact JSON object with sorted keys. An asset
// without tags gets an empty cell.
func tagsJSON(tags map[string]string) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
