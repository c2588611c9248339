// Package cmd provides the entrypoint for the cloudfront-edge-app cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/cloudfront-edge-app/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         *slog.Logger
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for the cloudfront-edge-app.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "edge-app",
		Short:        "Serve a web application from a CloudFront origin-request function",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("config") {
				if err := reloadConfig(cmd); err != nil {
					return err
				}
			}
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				AddSource: config.Global.Logging.CallerTrace,
				Level:     slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			}))
			return config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return runService(cmd)
			case config.ModeLambda:
				return runLambda(cmd)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Local development only; the edge runtime has no environment of its own.
	_ = godotenv.Load()

	// Root command flags
	configFilePath = os.Getenv("CONFIG_FILE")
	if configFilePath == "" {
		configFilePath = "config.yaml"
	}
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "[CONFIG_FILE] path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
		cmdInvoke(),
		cmdAssets(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	boundEnv = nil
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
}

// reloadConfig loads the file named by --config, then re-applies the environment and the flags given on
// the command line, in that order.
func reloadConfig(cmd *cobra.Command) error {
	changed := map[string]string{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		changed[f.Name] = f.Value.String()
	})
	if err := errors.Join(config.LoadFromFile(configFilePath), config.SetDefaults()); err != nil {
		return err
	}
	if err := applyEnv(); err != nil {
		return err
	}
	for name, value := range changed {
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("failed to re-apply flag %s: %w", name, err)
		}
	}
	return nil
}
