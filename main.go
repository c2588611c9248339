// Package main provides the entrypoint for cloudfront-edge-app.
package main

import (
	"os"

	"github.com/isometry/cloudfront-edge-app/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
