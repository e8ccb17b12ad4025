package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"gitlab.com/davidxarnold/agentless/pkg/core"
)

type stsIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type iamAliasAPI interface {
	ListAccountAliases(ctx context.Context, params *iam.ListAccountAliasesInput, optFns ...func(*iam.Options)) (*iam.ListAccountAliasesOutput, error)
}

// LocalAWSAccountAlias returns the IAM account alias of the account behind
// the locally configured AWS credentials as an alias source. An account
// without an alias yields an empty source.
func LocalAWSAccountAlias(ctx context.Context) (core.AliasSource, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return core.AliasSource{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return localAccountAlias(ctx, sts.NewFromConfig(cfg), iam.NewFromConfig(cfg))
}

func localAccountAlias(ctx context.Context, stsClient stsIdentityAPI, iamClient iamAliasAPI) (core.AliasSource, error) {
	src := core.AliasSource{Name: "local aws credentials"}

	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return src, fmt.Errorf("getting caller identity: %w", err)
	}
	aliases, err := iamClient.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return src, fmt.Errorf("listing account aliases: %w", err)
	}
	if len(aliases.AccountAliases) > 0 {
		src.Entries = append(src.Entries, core.AliasEntry{
			ID:    aws.ToString(identity.Account),
			Alias: aliases.AccountAliases[0],
		})
	}
	return src, nil
}
