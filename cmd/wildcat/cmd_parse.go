package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/format"
)

func newParseCmd(o *options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump the definitions that parsed",
		Long: `Parse a file and write the syntax tree of every definition that parsed
to stdout. Diagnostics for the rest go to stderr, and the exit status is 1
when any definition failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = o.cfg.Output.Format
			}
			encoder, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			res, checkErr := o.check(cmd, args[0])
			if res == nil {
				return checkErr
			}
			if err := encoder.Encode(res.Defs); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return checkErr
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}
