package cloud

import (
	"context"
	"errors"
	"testing"

	computepb "cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"
)

func TestGCEInstanceMetadata(t *testing.T) {
	var gotReq *computepb.GetInstanceRequest
	p := &gceProvider{get: func(ctx context.Context, req *computepb.GetInstanceRequest) (*computepb.Instance, error) {
		gotReq = req
		return &computepb.Instance{
			MachineType: proto.String("https://www.googleapis.com/compute/v1/projects/p/zones/z/machineTypes/e2-small"),
			Status:      proto.String("RUNNING"),
		}, nil
	}}

	md, err := p.InstanceMetadata(context.Background(), "proj-a/us-central1-a/vm-1")
	if err != nil {
		t.Fatalf("InstanceMetadata() error: %v", err)
	}
	if md.InstanceType != "e2-small" || md.State != "RUNNING" {
		t.Errorf("metadata = %+v", md)
	}
	if gotReq.GetProject() != "proj-a" || gotReq.GetZone() != "us-central1-a" || gotReq.GetInstance() != "vm-1" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestGCEInstanceMetadata_Errors(t *testing.T) {
	p := &gceProvider{get: func(ctx context.Context, req *computepb.GetInstanceRequest) (*computepb.Instance, error) {
		return nil, errors.New("404")
	}}
	if _, err := p.InstanceMetadata(context.Background(), "only/two"); err == nil {
		t.Errorf("expected error for malformed id")
	}
	if _, err := p.InstanceMetadata(context.Background(), "p/z/vm"); err == nil {
		t.Errorf("expected error when the API fails")
	}
}

func TestGCEMetadata_StoppedInstance(t *testing.T) {
	md := gceMetadata(&computepb.Instance{Status: proto.String("TERMINATED")})
	if md.State != "STOPPED" {
		t.Errorf("State = %q, want STOPPED", md.State)
	}
	if md.InstanceType != "" {
		t.Errorf("InstanceType = %q, want empty", md.InstanceType)
	}
}
