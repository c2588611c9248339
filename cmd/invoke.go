package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/isometry/cloudfront-edge-app/internal/edge"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdInvoke() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke [file|-]",
		Short: "Run a single origin-request event through the function and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) > 0 {
				src = args[0]
			}
			return runInvoke(cmd, src)
		},
	}
}

func runInvoke(cmd *cobra.Command, src string) error {
	var in io.Reader = cmd.InOrStdin()
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return errors.Wrap(err, "failed to open event")
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var event edge.Event
	if err := json.NewDecoder(in).Decode(&event); err != nil {
		return errors.Wrap(err, "failed to decode event")
	}

	logger := logger.With("mode", "invoke")
	rtm, err := setup(cmd.Context(), logger)
	if err != nil {
		return errors.Wrap(err, "failed to setup invoke")
	}
	resp, err := rtm.HandleEvent(cmd.Context(), event)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
