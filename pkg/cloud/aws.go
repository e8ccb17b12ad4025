package cloud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
)

// ec2DescribeAPI is the subset of the EC2 client used here.
type ec2DescribeAPI interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// awsProvider implements Provider for EC2 instances. Clients are created
// per region on first use.
type awsProvider struct {
	newClient func(ctx context.Context, region string) (ec2DescribeAPI, error)
	clients   map[string]ec2DescribeAPI
}

func newAWSProvider() *awsProvider {
	return &awsProvider{
		newClient: newEC2Client,
		clients:   make(map[string]ec2DescribeAPI),
	}
}

func newEC2Client(ctx context.Context, region string) (ec2DescribeAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return ec2.NewFromConfig(cfg), nil
}

// InstanceMetadata fetches the live type and state of an EC2 instance. The
// id format is "region/instance-id".
func (p *awsProvider) InstanceMetadata(ctx context.Context, id string) (*Metadata, error) {
	region, instanceID, ok := strings.Cut(id, "/")
	if !ok || region == "" || instanceID == "" {
		return nil, fmt.Errorf("invalid AWS provider ID format: %q", id)
	}

	svc, err := p.client(ctx, region)
	if err != nil {
		return nil, err
	}

	result, err := svc.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) {
			return nil, fmt.Errorf("describe instance %s: %s", instanceID, ae.ErrorCode())
		}
		return nil, fmt.Errorf("describe instance %s: %w", instanceID, err)
	}

	if len(result.Reservations) == 0 || len(result.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("no instance information found for %s", instanceID)
	}

	instance := result.Reservations[0].Instances[0]
	metadata := &Metadata{
		InstanceType: string(instance.InstanceType),
	}
	if instance.State != nil {
		metadata.State = strings.ToUpper(string(instance.State.Name))
	}
	return metadata, nil
}

func (p *awsProvider) client(ctx context.Context, region string) (ec2DescribeAPI, error) {
	if c, ok := p.clients[region]; ok {
		return c, nil
	}
	c, err := p.newClient(ctx, region)
	if err != nil {
		return nil, err
	}
	p.clients[region] = c
	return c, nil
}

// nolint:gochecknoinits // registration-style init keeps provider wiring local to this file.
func init() {
	RegisterProvider(ProviderAWS, func() Provider { return newAWSProvider() })
}
