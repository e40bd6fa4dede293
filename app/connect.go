package app

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	fmt "github.com/jhunt/go-ansi"
)

// Connect resolves an AWS session the same way the aws CLI would:
// shared config and credentials files, honoring the named profile and
// region.  Credential problems are fatal here, before any command
// logic runs.
func Connect(ctx context.Context, profile, region string) aws.Config {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{Could not establish an AWS session: %s}\n", err)
		fmt.Fprintf(os.Stderr, "Try @C{aws-butler --profile NAME ...}\n")
		fmt.Fprintf(os.Stderr, " or set @B{AWS_PROFILE} in your environment\n")
		os.Exit(1)
	}
	return cfg
}
