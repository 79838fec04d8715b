package main

import (
	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/repl"
)

func newREPLCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Type definitions and see how they parse",
		Long: `Start an interactive session. Input is collected until a line ends with
a terminating ";" and is then parsed. Commands: :defs lists the names
defined so far, :clear drops pending input and :quit ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.colorMode).Run()
		},
	}
}
