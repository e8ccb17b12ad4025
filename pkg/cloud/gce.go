package cloud

import (
	"context"
	"fmt"
	"strings"

	compute "cloud.google.com/go/compute/apiv1"
	computepb "cloud.google.com/go/compute/apiv1/computepb"
)

// gceProvider implements Provider for GCE instances.
type gceProvider struct {
	get func(ctx context.Context, req *computepb.GetInstanceRequest) (*computepb.Instance, error)
}

func newGCEProvider() *gceProvider {
	return &gceProvider{get: getGCEInstance}
}

func getGCEInstance(ctx context.Context, req *computepb.GetInstanceRequest) (*computepb.Instance, error) {
	c, err := compute.NewInstancesRESTClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCE client: %w", err)
	}
	defer func() {
		// Best-effort close; ignore error to satisfy staticcheck/errcheck.
		_ = c.Close()
	}()
	return c.Get(ctx, req)
}

// InstanceMetadata fetches the live type and state of a GCE instance.
// The id format is expected to be "project/zone/instance", where instance
// is the numeric instance id or the instance name.
func (p *gceProvider) InstanceMetadata(ctx context.Context, id string) (*Metadata, error) {
	parts := strings.Split(id, "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid GCE provider ID format: %q", id)
	}

	instance, err := p.get(ctx, &computepb.GetInstanceRequest{
		Project:  parts[0],
		Zone:     parts[1],
		Instance: parts[2],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get GCE instance: %w", err)
	}
	return gceMetadata(instance), nil
}

// gceMetadata maps an instance onto Metadata. GCE reports a stopped
// instance as TERMINATED; it still exists, so it maps to STOPPED.
func gceMetadata(instance *computepb.Instance) *Metadata {
	metadata := &Metadata{}

	if mt := instance.GetMachineType(); mt != "" {
		// Extract just the machine type name from the full URL.
		parts := strings.Split(mt, "/")
		metadata.InstanceType = parts[len(parts)-1]
	}

	switch status := strings.ToUpper(instance.GetStatus()); status {
	case "TERMINATED":
		metadata.State = "STOPPED"
	default:
		metadata.State = status
	}
	return metadata
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(ProviderGCE, func() Provider { return newGCEProvider() })
}
