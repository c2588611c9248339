package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/cloudfront-edge-app/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as a Lambda@Edge origin-request function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLambda(cmd)
		},
	}
}

func runLambda(cmd *cobra.Command) error {
	logger := logger.With("mode", config.ModeLambda)
	rtm, err := setup(cmd.Context(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to setup lambda")
	}

	logger.Info("lambda starting...")
	lambda.StartWithOptions(rtm.HandleEvent,
		lambda.WithContext(cmd.Context()))
	return nil
}
