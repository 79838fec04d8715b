package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/henry-nazare/wildcat/config"
	"github.com/henry-nazare/wildcat/parser"
)

const version = "0.1.0"

// errSyntax is returned when diagnostics were already printed; main exits
// with status 1 without printing anything else.
var errSyntax = errors.New("syntax errors")

type options struct {
	configPath string
	verbosity  int
	logFile    string
	colorFlag  string

	cfg       *config.Config
	colorMode parser.ColorMode
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSyntax) {
			fmt.Fprintln(os.Stderr, "wildcat:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:           "wildcat <file>",
		Short:         "Check a file of wildcat definitions",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := o.check(cmd, args[0])
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "configuration file (default $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	flags.CountVarP(&o.verbosity, "verbose", "v", "log verbosity, repeat for more")
	flags.StringVar(&o.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&o.colorFlag, "color", "", "color diagnostics: auto, always or never")

	rootCmd.AddCommand(newParseCmd(o))
	rootCmd.AddCommand(newFmtCmd(o))
	rootCmd.AddCommand(newScanCmd(o))
	rootCmd.AddCommand(newWatchCmd(o))
	rootCmd.AddCommand(newLSPCmd(o))
	rootCmd.AddCommand(newREPLCmd(o))

	return rootCmd
}

// setup loads the configuration, lets flags override it and configures
// logging.
func (o *options) setup(cmd *cobra.Command) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("color") {
		o.cfg.Output.Color = o.colorFlag
	}
	if flags.Changed("verbose") {
		o.cfg.Log.Verbosity = o.verbosity
	}
	if flags.Changed("log-file") {
		o.cfg.Log.File = o.logFile
	}

	if o.colorMode, err = parser.ParseColorMode(o.cfg.Output.Color); err != nil {
		return err
	}

	var logPath *string
	if o.cfg.Log.File != "" {
		logPath = &o.cfg.Log.File
	}
	commonlog.Configure(o.cfg.Log.Verbosity, logPath)
	return nil
}

// check parses path and prints its diagnostics on stderr. It returns
// errSyntax when a definition failed.
func (o *options) check(cmd *cobra.Command, path string) (*parser.Result, error) {
	res, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := o.printDiagnostics(cmd, res); err != nil {
		return nil, err
	}
	if !res.OK() {
		return res, errSyntax
	}
	return res, nil
}

func (o *options) printDiagnostics(cmd *cobra.Command, res *parser.Result) error {
	p := parser.NewPrinter(cmd.ErrOrStderr(), o.colorMode)
	if err := p.PrintAll(res.Source, res.Diagnostics); err != nil {
		return fmt.Errorf("print diagnostics: %w", err)
	}
	return nil
}
