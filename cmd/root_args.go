package cmd

import (
	"github.com/isometry/cloudfront-edge-app/internal/config"
	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/isometry/cloudfront-edge-app/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'lambda' and 'service'",
		Short:       helpers.Ptr("m"),
	},
	&config.App.Mode: {
		Name:        "app-mode",
		Description: "The mode handed to the application build. Possible values are 'production' and 'development'",
		Env:         helpers.Ptr(edge.ModeEnv),
	},
	&config.App.AnswersParameter: {
		Name:        "app-answers-parameter",
		Description: "The SSM parameter holding the comma separated SHA-1 hashes of the accepted answers",
	},
	&config.Edge.BodyEncoding: {
		Name:        "edge-body-encoding",
		Description: "The encoding of generated response bodies. Possible values are 'base64' and 'text'",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}
