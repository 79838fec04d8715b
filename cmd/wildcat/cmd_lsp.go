package main

import (
	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/workspace"
)

func newLSPCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := o.cfg.Workspace
			server := workspace.NewLSPServer(version, ws.Extensions, ws.PollInterval.Duration)
			return server.RunStdio()
		},
	}
}
