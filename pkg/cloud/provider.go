package cloud

import (
	"context"

	"gitlab.com/davidxarnold/agentless/pkg/core"
	"gitlab.com/davidxarnold/agentless/pkg/util"
)

// Provider is implemented by cloud providers capable of returning live
// metadata for an instance. The id is the provider ID without its scheme,
// e.g. "us-east-1/i-0abc" for AWS.
type Provider interface {
	InstanceMetadata(ctx context.Context, id string) (*Metadata, error)
}

// ProviderFactory creates a new Provider instance.
type ProviderFactory func() Provider

// Provider names used as provider ID schemes.
const (
	ProviderAWS = "aws"
	ProviderGCE = "gce"
)

var providerRegistry = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory under the given name.
// It is typically called from init() functions in provider-specific files.
func RegisterProvider(name string, factory ProviderFactory) {
	providerRegistry[name] = factory
}

// LookupProvider returns a Provider implementation for the given provider name.
// Unknown providers return nil and should be treated as "no cloud metadata".
func LookupProvider(name string) Provider {
	if factory, ok := providerRegistry[name]; ok {
		return factory()
	}
	return nil
}

// ProviderID builds the provider ID used to look up an asset, e.g.
// "aws:///us-east-1/i-0abc" or "gce://my-project/us-central1-a/1234567890".
// GCE lookups use the numeric instance id, falling back to the asset name
// only when the id is missing. It reports false for assets that cannot be
// looked up, which includes every Azure asset.
func ProviderID(a core.NormalizedAsset) (string, bool) {
	cp, _ := core.ParseCloudProvider(a.CloudProvider)
	switch cp {
	case core.ProviderAWS:
		if a.Region == "" || a.InstanceID == "" {
			return "", false
		}
		return util.FormatProviderID(ProviderAWS, "", a.Region, a.InstanceID), true
	case core.ProviderGCP:
		name := a.InstanceID
		if name == "" {
			name = a.Name
		}
		if a.AccountID == "" || a.Region == "" || name == "" {
			return "", false
		}
		return util.FormatProviderID(ProviderGCE, a.AccountID, a.Region, name), true
	}
	return "", false
}
