// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"
)

const (
	// ModeLambda runs the edge function inside the Lambda runtime.
	ModeLambda = "lambda"
	// ModeService runs the local CloudFront emulator.
	ModeService = "service"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// App is a struct that contains the configuration of the web application.
	App app
	// Edge is a struct that contains the configuration of the edge request adapter.
	Edge edge
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Assets is a struct that contains the configuration for publishing static assets.
	Assets assets
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"lambda" validate:"oneof=lambda service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty" validate:"min=0"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type app struct {
	// Mode is handed to the application build. Empty means APP_MODE or production.
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=production development"`
	// AnswersParameter is the SSM parameter holding the accepted answer hashes.
	AnswersParameter string `yaml:"answersParameter,omitempty"`
}

type edge struct {
	// BodyEncoding is the encoding applied to every generated response body.
	BodyEncoding string `yaml:"bodyEncoding,omitempty" default:"base64" validate:"oneof=text base64"`
	// MaxBodySize is the largest encoded response body CloudFront accepts from the function.
	MaxBodySize int `yaml:"maxBodySize,omitempty" default:"1048576" validate:"min=1"`
}

type service struct {
	Addr       string        `yaml:"addr,omitempty"`
	Port       string        `yaml:"port,omitempty" default:"8080" validate:"required"`
	Timeout    time.Duration `yaml:"timeout,omitempty" default:"5s"`
	AssetsDir  string        `yaml:"assetsDir,omitempty" default:"public"`
	AssetsPath string        `yaml:"assetsPath,omitempty" default:"/build/" validate:"startswith=/,endswith=/"`
}

type assets struct {
	Bucket string `yaml:"bucket,omitempty"`
	Dir    string `yaml:"dir,omitempty" default:"public" validate:"required"`
	Prefix string `yaml:"prefix,omitempty"`
	// Prune removes objects that are no longer present locally.
	Prune  bool          `yaml:"prune,omitempty" default:"true"`
	MaxAge time.Duration `yaml:"maxAge,omitempty" default:"8760h"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&App),
		defaults.Set(&Edge),
		defaults.Set(&Service),
		defaults.Set(&Assets),
	)
}

// Validate checks every configuration section against its constraints.
func Validate() error {
	v := validator.New()
	return errors.Join(
		v.Struct(&Global),
		v.Struct(&App),
		v.Struct(&Edge),
		v.Struct(&Service),
		v.Struct(&Assets),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		App     app     `yaml:"app,omitempty"`
		Edge    edge    `yaml:"edge,omitempty"`
		Service service `yaml:"service,omitempty"`
		Assets  assets  `yaml:"assets,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	App = a.App
	Edge = a.Edge
	Service = a.Service
	Assets = a.Assets

	return nil
}
