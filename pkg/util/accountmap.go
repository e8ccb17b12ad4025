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
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// LoadAccountMap reads an id -> alias override file. JSON is tried first;
// anything that is not a JSON object is parsed as a YAML mapping. YAML keys
// are taken verbatim, so an unquoted 012345678901 keeps its leading zero.
func LoadAccountMap(path string) (core.AccountAliasMap, error) {
	// #nosec G304 - the path is supplied by the operator on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading account map: %w", err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err == nil {
		return core.AccountAliasMap(m), nil
	}

	m, err = parseYAMLMap(data)
	if err != nil {
		return nil, fmt.Errorf("parsing account map %s: %w", path, err)
	}
	return core.AccountAliasMap(m), nil
}

func parseYAMLMap(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	m := make(map[string]string)
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of account id to alias, got line %d", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: account id and alias must be scalars", k.Line)
		}
		m[k.Value] = v.Value
	}
	return m, nil
}
