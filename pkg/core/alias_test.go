package core

import (
	"testing"
)

func TestResolveAliases_Precedence(t *testing.T) {
	override := AccountAliasMap{"111": "Prod"}
	connectors := AliasSource{Name: "connectors", Entries: []AliasEntry{
		{ID: "111", Alias: "prod-connector"},
		{ID: "222", Alias: "staging"},
		{ID: "222", Alias: "staging-dup"},
		{ID: "", Alias: "no-id"},
		{ID: "333", Alias: ""},
	}}
	adc := AliasSource{Name: "asset data connectors", Entries: []AliasEntry{
		{ID: "222", Alias: "adc-staging"},
		{ID: "333", Alias: "dev"},
	}}

	got := ResolveAliases(override, connectors, adc)

	want := AccountAliasMap{"111": "Prod", "222": "staging", "333": "dev"}
	if len(got) != len(want) {
		t.Fatalf("ResolveAliases() = %v, want %v", got, want)
	}
	for id, alias := range want {
		if got[id] != alias {
			t.Errorf("alias[%s] = %q, want %q", id, got[id], alias)
		}
	}
}

func TestResolveAliases_DoesNotMutateOverride(t *testing.T) {
	override := AccountAliasMap{"1": "one"}
	_ = ResolveAliases(override, AliasSource{Entries: []AliasEntry{{ID: "2", Alias: "two"}}})
	if len(override) != 1 {
		t.Errorf("override was modified: %v", override)
	}
}

func TestMerge(t *testing.T) {
	m := AccountAliasMap{}
	n := m.Merge(AliasSource{Entries: []AliasEntry{{"a", "A"}, {"a", "B"}, {"b", "B"}}})
	if n != 2 {
		t.Errorf("Merge() added %d, want 2", n)
	}
	if m["a"] != "A" {
		t.Errorf("first writer should win, got %q", m["a"])
	}
}

func TestApplyAliases(t *testing.T) {
	assets := []NormalizedAsset{
		{AccountID: "111"},
		{AccountID: "999", AccountAlias: "stale"},
	}
	ApplyAliases(assets, AccountAliasMap{"111": "Prod"})

	if assets[0].AccountAlias != "Prod" || assets[0].AccountKey() != "111 (Prod)" {
		t.Errorf("asset 0 = %+v, key %q", assets[0], assets[0].AccountKey())
	}
	if assets[1].AccountAlias != "" || assets[1].AccountKey() != "999" {
		t.Errorf("asset 1 = %+v, key %q", assets[1], assets[1].AccountKey())
	}
}
