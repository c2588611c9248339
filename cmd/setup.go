package cmd

import (
	"context"
	"log/slog"

	"github.com/isometry/cloudfront-edge-app/internal/app"
	"github.com/isometry/cloudfront-edge-app/internal/config"
	awsctl "github.com/isometry/cloudfront-edge-app/internal/controllers/aws"
	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/isometry/cloudfront-edge-app/internal/runtime"
	"github.com/pkg/errors"
)

// setup builds the application and wraps it in the edge adapter and runtime.
func setup(ctx context.Context, logger *slog.Logger) (*runtime.Runtime, error) {
	buildOpts := []app.Option{app.WithLogger(logger.With("component", "app"))}
	if config.App.AnswersParameter != "" {
		logger.Debug("loading answers...", slog.String("parameter", config.App.AnswersParameter))
		ctl, err := awsctl.NewController(
			awsctl.WithContext(ctx),
			awsctl.WithLogger(logger.With("component", "aws-controller")))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create aws controller")
		}
		answers, err := ctl.GetStringList(config.App.AnswersParameter)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load answers")
		}
		buildOpts = append(buildOpts, app.WithAnswers(answers))
	}

	logger.Debug("creating edge handler...")
	handle := edge.New(app.NewBuild(buildOpts...),
		edge.WithLoadContext(app.GetLoadContext),
		edge.WithMode(config.App.Mode),
		edge.WithBodyEncoding(config.Edge.BodyEncoding),
		edge.WithMaxBodySize(config.Edge.MaxBodySize),
		edge.WithLogger(logger.With("component", "edge")))

	logger.Debug("creating runtime...")
	return runtime.NewRuntime(handle,
		runtime.WithLogger(logger.With("component", "runtime"))), nil
}
