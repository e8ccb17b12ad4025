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

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gitlab.com/davidxarnold/agentless/pkg/cloud"
	"gitlab.com/davidxarnold/agentless/pkg/core"
	"gitlab.com/davidxarnold/agentless/pkg/qualys"
	"gitlab.com/davidxarnold/agentless/pkg/report"
	"gitlab.com/davidxarnold/agentless/pkg/util"
	v "gitlab.com/davidxarnold/agentless/version"
)

// Swapped out in tests.
var (
	loadAccountMap = util.LoadAccountMap
	localAWSAlias  = cloud.LocalAWSAccountAlias
)

// Run executes one report run: authenticate, resolve aliases, search,
// filter and map, optionally refresh live state, then write the CSV and
// HTML reports. Only an authentication failure is returned as an error;
// every other failure is logged and the run continues with what it has.
func Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString(),
		CSVPath:  opts.OutputPrefix + ".csv",
		HTMLPath: opts.OutputPrefix + ".html",
	}
	logger := log.WithFields(log.Fields{
		"platform": opts.Platform.Name,
		"cloud":    opts.Cloud,
		"run":      res.RunID,
	})

	client := qualys.NewClient(opts.Platform, opts.Username, opts.Password, opts.HTTPClient)
	sess, err := client.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating to %s: %w", opts.Platform.Name, err)
	}
	logger.Info("authenticated")

	res.Aliases = resolveAliases(ctx, logger, client, sess, opts)

	hosts, err := client.SearchHostAssets(ctx, qualys.HostFilter{
		Cloud:        opts.Cloud,
		CreatedHours: opts.CreatedHours,
		UpdatedHours: opts.UpdatedHours,
	})
	if err != nil {
		logger.WithError(err).Error("host asset search failed")
	}

	assets, stats := core.NormalizeHosts(opts.Cloud, hosts)
	res.Stats = stats
	logger.WithFields(log.Fields{
		"total":      stats.Total,
		"hasAgent":   stats.Dropped[core.ReasonHasAgent],
		"terminated": stats.Dropped[core.ReasonTerminated],
		"incomplete": stats.Dropped[core.ReasonIncomplete],
	}).Infof("found %d assets without agent", stats.Kept)

	if opts.CloudInfo {
		assets = refreshLiveState(ctx, logger, assets, opts)
	}

	core.ApplyAliases(assets, res.Aliases)
	res.Assets = assets

	writeReports(logger, res, opts)
	return res, nil
}

// resolveAliases merges the override file with the platform and local
// alias sources. Failures only cost the source that failed.
func resolveAliases(ctx context.Context, logger *log.Entry, client *qualys.Client, sess *qualys.Session, opts Options) core.AccountAliasMap {
	var override core.AccountAliasMap
	if opts.AccountMapPath != "" {
		m, err := loadAccountMap(opts.AccountMapPath)
		if err != nil {
			logger.WithError(err).Warn("unable to load account map")
		} else {
			override = m
			logger.WithField("file", opts.AccountMapPath).Infof("loaded %d account aliases from file", len(m))
		}
	}

	var sources []core.AliasSource

	conns, err := client.ListConnectors(ctx, sess, opts.Cloud)
	if err != nil {
		logger.WithError(err).Warn("unable to list connectors")
	} else {
		logger.Infof("found %d %s connectors", len(conns), opts.Cloud)
		if opts.Cloud == core.ProviderAWS {
			sources = append(sources, qualys.ConnectorAliases(conns))
		}
	}

	items, err := client.ListAssetDataConnectors(ctx, opts.Cloud)
	if err != nil {
		logger.WithError(err).Warn("account aliases unavailable from asset data connectors")
	} else {
		sources = append(sources, qualys.AssetDataConnectorAliases(opts.Cloud, items))
	}

	if opts.AWSLocalAlias && opts.Cloud == core.ProviderAWS {
		src, err := localAWSAlias(ctx)
		if err != nil {
			logger.WithError(err).Warn("unable to read the local AWS account alias")
		} else {
			sources = append(sources, src)
		}
	}

	aliases := core.ResolveAliases(override, sources...)
	logger.Infof("resolved %d account aliases", len(aliases))
	return aliases
}

func refreshLiveState(ctx context.Context, logger *log.Entry, assets []core.NormalizedAsset, opts Options) []core.NormalizedAsset {
	start := time.Now()
	cache := cloud.NewCache(opts.CloudCacheTTL, opts.CloudCacheDisk)
	rs := cloud.Refresh(ctx, cache, assets)
	assets, removed := core.DropTerminated(assets)
	logger.WithFields(log.Fields{
		"updated":    rs.Updated,
		"skipped":    rs.Skipped,
		"failed":     rs.Failed,
		"terminated": removed,
		"took":       time.Since(start).Round(time.Millisecond),
	}).Info("refreshed live cloud state")
	return assets
}

func writeReports(logger *log.Entry, res *Result, opts Options) {
	written, err := report.WriteCSVFile(res.CSVPath, res.Assets)
	switch {
	case err != nil:
		logger.WithError(err).Error("unable to write CSV report")
	case !written:
		logger.Warn("no assets to export to CSV")
	default:
		res.CSVWritten = true
		logger.WithField("file", res.CSVPath).Info("CSV report written")
	}

	meta := report.Meta{
		Platform:  opts.Platform.Name,
		Cloud:     opts.Cloud.String(),
		Version:   v.Version,
		RunID:     res.RunID,
		Generated: time.Now(),
	}
	if err := report.WriteHTMLFile(res.HTMLPath, res.Assets, meta); err != nil {
		logger.WithError(err).Error("unable to write HTML report")
		return
	}
	logger.WithField("file", res.HTMLPath).Info("HTML report written")
}
