package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/isometry/cloudfront-edge-app/internal/assets"
	"github.com/isometry/cloudfront-edge-app/internal/config"
	awsctl "github.com/isometry/cloudfront-edge-app/internal/controllers/aws"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var assetsEnvMapString = map[*string]boundEnvVar[string]{
	&config.Assets.Bucket: {
		Name:        "assets-bucket",
		Description: "The S3 bucket CloudFront serves the static assets from",
	},
	&config.Assets.Dir: {
		Name:        "assets-dir",
		Description: "The local directory holding the static build output",
	},
	&config.Assets.Prefix: {
		Name:        "assets-prefix",
		Description: "The key prefix the assets are published under",
	},
}

var assetsEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Assets.Prune: {
		Name:        "assets-prune",
		Description: "Delete published objects that no longer exist locally",
	},
}

var assetsEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Assets.MaxAge: {
		Name:        "assets-max-age",
		Description: "The cache lifetime applied to every published asset",
	},
}

func cmdAssets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage the static assets served alongside the function",
	}
	deploy := &cobra.Command{
		Use:   "deploy",
		Short: "Publish the static build output to S3",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssetsDeploy(cmd)
		},
	}
	cmd.AddCommand(deploy)

	bindEnvMap(cmd, assetsEnvMapString)
	bindEnvMap(cmd, assetsEnvMapBool)
	bindEnvMap(cmd, assetsEnvMapDuration)
	return cmd
}

func runAssetsDeploy(cmd *cobra.Command) error {
	if config.Assets.Bucket == "" {
		return errors.New("no assets bucket configured")
	}
	logger := logger.With("mode", "assets")

	ctl, err := awsctl.NewController(
		awsctl.WithContext(cmd.Context()),
		awsctl.WithBucket(config.Assets.Bucket),
		awsctl.WithLogger(logger.With("component", "aws-controller")))
	if err != nil {
		return errors.Wrap(err, "failed to create aws controller")
	}

	deployer := assets.NewDeployer(ctl,
		assets.WithPrefix(config.Assets.Prefix),
		assets.WithPrune(config.Assets.Prune),
		assets.WithMaxAge(config.Assets.MaxAge),
		assets.WithLogger(logger.With("component", "deployer")))

	logger.Info("deploying assets...",
		"bucket", config.Assets.Bucket,
		"dir", config.Assets.Dir,
		"prefix", config.Assets.Prefix)
	report, err := deployer.Deploy(cmd.Context(), os.DirFS(config.Assets.Dir))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
