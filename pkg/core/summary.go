package core

import "sort"

// AccountCount is the number of assets found for one account label.
type AccountCount struct {
	Key   string
	Count int
}

// Summary holds report-level aggregates.
type Summary struct {
	TotalAssets int
	// Accounts is sorted by Key.
	Accounts []AccountCount
	// Regions holds the distinct non-empty regions, sorted.
	Regions []string
	// RegionCount counts distinct region values, an empty region included.
	RegionCount int
}

// Summarize computes the report aggregates for a set of assets. It does not
// modify its input.
func Summarize(assets []NormalizedAsset) Summary {
	accounts := make(map[string]int)
	regions := make(map[string]struct{})
	for _, a := range assets {
		accounts[a.AccountKey()]++
		regions[a.Region] = struct{}{}
	}

	s := Summary{
		TotalAssets: len(assets),
		Accounts:    make([]AccountCount, 0, len(accounts)),
		Regions:     make([]string, 0, len(regions)),
		RegionCount: len(regions),
	}
	for k, n := range accounts {
		s.Accounts = append(s.Accounts, AccountCount{Key: k, Count: n})
	}
	sort.Slice(s.Accounts, func(i, j int) bool { return s.Accounts[i].Key < s.Accounts[j].Key })

	for r := range regions {
		if r != "" {
			s.Regions = append(s.Regions, r)
		}
	}
	sort.Strings(s.Regions)
	return s
}
