package cloud

import (
	"context"

	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

// RefreshStats counts the outcome of a Refresh.
type RefreshStats struct {
	Updated int
	Skipped int
	Failed  int
}

// Refresh overwrites each asset's state and instance type with the live
// values reported by its cloud, one lookup at a time. Assets that cannot be
// looked up or whose lookup fails are left untouched. The cache is saved
// when done.
func Refresh(ctx context.Context, c *Cache, assets []core.NormalizedAsset) RefreshStats {
	var stats RefreshStats
	for i := range assets {
		if ctx.Err() != nil {
			break
		}
		a := &assets[i]
		id, ok := ProviderID(*a)
		if !ok {
			stats.Skipped++
			continue
		}

		md, err := c.GetOrFetch(ctx, id)
		if err != nil {
			log.WithError(err).WithField("providerID", id).Warn("live cloud lookup failed")
			stats.Failed++
			continue
		}
		if md == nil {
			stats.Skipped++
			continue
		}

		if md.State != "" {
			a.State = md.State
		}
		if md.InstanceType != "" {
			a.InstanceType = md.InstanceType
		}
		stats.Updated++
	}

	if err := c.Save(); err != nil {
		log.Debugf("failed to write cloud cache to disk: %v", err)
	}
	return stats
}
