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

// AliasEntry is one id/alias pair contributed by an alias source, in the
// order the source listed it.
type AliasEntry struct {
	ID    string
	Alias string
}

// AliasSource is a named, ordered list of alias entries.
type AliasSource struct {
	Name    string
	Entries []AliasEntry
}

// Add records alias for id unless either is empty or id is already
// present. It reports whether the map changed.
func (m AccountAliasMap) Add(id, alias string) bool {
	if id == "" || alias == "" {
		return false
	}
	if _, exists := m[id]; exists {
		return false
	}
	m[id] = alias
	return true
}

// Merge adds every entry of src with first-writer-wins semantics and
// returns the number of entries added.
func (m AccountAliasMap) Merge(src AliasSource) int {
	added := 0
	for _, e := range src.Entries {
		if m.Add(e.ID, e.Alias) {
			added++
		}
	}
	return added
}

// ResolveAliases builds the alias map for a run. The override map is copied
// as-is and wins over everything; sources are then merged in the given
// order, an earlier source never being overwritten by a later one.
func ResolveAliases(override AccountAliasMap, sources ...AliasSource) AccountAliasMap {
	m := make(AccountAliasMap, len(override))
	for id, alias := range override {
		m[id] = alias
	}
	for _, src := range sources {
		m.Merge(src)
	}
	return m
}

// ApplyAliases sets AccountAlias on every asset whose account id has an
// alias. Assets without one are left with an empty alias.
func ApplyAliases(assets []NormalizedAsset, aliases AccountAliasMap) {
	for i := range assets {
		assets[i].AccountAlias = aliases[assets[i].AccountID]
	}
}
