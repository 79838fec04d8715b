package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/henry-nazare/wildcat/workspace"
)

func newWatchCmd(o *options) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Recheck definition files under a directory as they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("stat %s: %w", dir, err)
			}
			if !cmd.Flags().Changed("interval") {
				interval = o.cfg.Workspace.PollInterval.Duration
			}

			ws := workspace.New(dir, o.cfg.Workspace.Extensions)
			watcher := workspace.NewWatcher(ws, interval)
			watcher.OnChange = func(path string) {
				f := ws.GetFile(path)
				if f == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: removed\n", path)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d definitions, %d failed\n", path, len(f.Defs), f.Failed)
				if err := o.printFile(cmd, f); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			watcher.Start()
			<-ctx.Done()
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval")

	return cmd
}
