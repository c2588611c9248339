package cmd

import (
	"net"
	"net/http"
	"time"

	"github.com/isometry/cloudfront-edge-app/internal/config"
	"github.com/isometry/cloudfront-edge-app/internal/helpers"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var svcEnvMapString = map[*string]boundEnvVar[string]{
	&config.Service.Addr: {
		Name:        "service-addr",
		Description: "The address the local emulator listens on",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-port",
		Description: "The port the local emulator listens on",
		Short:       helpers.Ptr("p"),
	},
	&config.Service.AssetsDir: {
		Name:        "service-assets-dir",
		Description: "The directory of static assets served next to the function",
	},
	&config.Service.AssetsPath: {
		Name:        "service-assets-path",
		Description: "The path the static assets are served under",
	},
}

var svcEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-timeout",
		Description: "The I/O timeout of the local emulator",
		Short:       helpers.Ptr("t"),
	},
}

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "server"},
		Short:   "Emulate CloudFront locally in front of the function",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd)
		},
	}
	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)
	return cmd
}

func runService(cmd *cobra.Command) error {
	logger := logger.With("mode", config.ModeService)
	rtm, err := setup(cmd.Context(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to setup service")
	}

	logger.Debug("creating HTTP server...")
	h := http.NewServeMux()
	if config.Service.AssetsDir != "" {
		h.Handle(config.Service.AssetsPath, http.FileServer(http.Dir(config.Service.AssetsDir)))
	}
	h.Handle("/", rtm)

	s := &http.Server{
		Handler:      h,
		Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
		WriteTimeout: config.Service.Timeout,
		ReadTimeout:  config.Service.Timeout,
		IdleTimeout:  config.Service.Timeout,
	}

	logger.Info("serving...",
		"address", s.Addr,
		"assets", config.Service.AssetsPath,
		"timeout", config.Service.Timeout.String())
	return s.ListenAndServe()
}
