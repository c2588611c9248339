package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	Global, App, Edge, Service, Assets = global{}, app{}, edge{}, service{}, assets{}
	t.Cleanup(func() {
		Global, App, Edge, Service, Assets = global{}, app{}, edge{}, service{}, assets{}
	})
}

func TestSetDefaults(t *testing.T) {
	reset(t)
	require.NoError(t, SetDefaults())

	assert.Equal(t, ModeLambda, Global.Mode)
	assert.Equal(t, "base64", Edge.BodyEncoding)
	assert.Equal(t, 1<<20, Edge.MaxBodySize)
	assert.Equal(t, "8080", Service.Port)
	assert.Equal(t, 5*time.Second, Service.Timeout)
	assert.Equal(t, "/build/", Service.AssetsPath)
	assert.Equal(t, "public", Assets.Dir)
	assert.True(t, Assets.Prune)
	assert.Equal(t, 365*24*time.Hour, Assets.MaxAge)
	assert.NoError(t, Validate())
}

func TestLoadFromFile(t *testing.T) {
	testCases := []struct {
		Name        string
		Content     string
		ExpectError bool
		Check       func(t *testing.T)
	}{
		{
			Name: "full_configuration",
			Content: `
global:
  mode: service
  logging:
    verbosity: 2
app:
  mode: development
  answersParameter: /edge-app/answers
edge:
  bodyEncoding: text
service:
  port: "9090"
  timeout: 2s
assets:
  bucket: assets-bucket
  prefix: static
`,
			Check: func(t *testing.T) {
				assert.Equal(t, ModeService, Global.Mode)
				assert.Equal(t, 2, Global.Logging.Verbosity)
				assert.Equal(t, "development", App.Mode)
				assert.Equal(t, "/edge-app/answers", App.AnswersParameter)
				assert.Equal(t, "text", Edge.BodyEncoding)
				assert.Equal(t, "9090", Service.Port)
				assert.Equal(t, 2*time.Second, Service.Timeout)
				assert.Equal(t, "assets-bucket", Assets.Bucket)
				assert.Equal(t, "static", Assets.Prefix)
			},
		},
		{
			Name:        "malformed_yaml",
			Content:     "global: [",
			ExpectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			reset(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.Content), 0o600))

			err := LoadFromFile(path)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, SetDefaults())
			tc.Check(t)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	reset(t)
	assert.NoError(t, LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.NoError(t, LoadFromFile(""))
	assert.Error(t, LoadFromFile(t.TempDir()))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		Name   string
		Mutate func()
	}{
		{
			Name:   "invalid_mode",
			Mutate: func() { Global.Mode = "daemon" },
		},
		{
			Name:   "invalid_body_encoding",
			Mutate: func() { Edge.BodyEncoding = "gzip" },
		},
		{
			Name:   "invalid_app_mode",
			Mutate: func() { App.Mode = "staging" },
		},
		{
			Name:   "relative_assets_path",
			Mutate: func() { Service.AssetsPath = "build/" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			reset(t)
			require.NoError(t, SetDefaults())
			tc.Mutate()
			assert.Error(t, Validate())
		})
	}
}
