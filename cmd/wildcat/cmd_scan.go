package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/parser"
	"github.com/henry-nazare/wildcat/workspace"
)

func newScanCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Check every definition file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}

			ws := workspace.New(dir, o.cfg.Workspace.Extensions)
			if err := ws.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			var defs, failed int
			for _, f := range ws.Files() {
				if err := o.printFile(cmd, f); err != nil {
					return err
				}
				defs += len(f.Defs)
				failed += f.Failed
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d definitions, %d failed\n", len(ws.Files()), defs, failed)
			if failed > 0 {
				return errSyntax
			}
			return nil
		},
	}

	return cmd
}

func (o *options) printFile(cmd *cobra.Command, f *workspace.File) error {
	return o.printDiagnostics(cmd, &parser.Result{Source: f.Source, Defs: f.Defs, Diagnostics: f.Diagnostics, Failed: f.Failed})
}
