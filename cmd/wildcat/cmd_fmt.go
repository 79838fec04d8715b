package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/format"
)

func newFmtCmd(o *options) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a file in canonical layout",
		Long: `Print every definition of a file in canonical layout, one per line.

A file with syntax errors is left alone and its diagnostics are printed.
Use -w to overwrite the file in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			res, err := o.check(cmd, filename)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := format.NewPrettyPrinter(&buf).Encode(res.Defs); err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, buf.Bytes(), 0644)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
