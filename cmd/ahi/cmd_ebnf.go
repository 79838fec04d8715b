package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/henry-nazare/wildcat/ebnf/earley"
	"github.com/henry-nazare/wildcat/parser"
)

var errRejected = errors.New("input rejected")

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfPrintCmd())
	cmd.AddCommand(newEbnfRecognizeCmd())

	return cmd
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file. Without a file, the grammar of
the definition language built into wildcat is checked from its start
production.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				grammar, err := parser.VerifyGrammar()
				if err != nil {
					printErrors(cmd.OutOrStdout(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d productions, start %s\n", len(grammar), parser.GrammarStart)
				return nil
			}

			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			grammar, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			if err := ebnf.Verify(grammar, startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the grammar of the definition language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(parser.Grammar())
			return err
		},
	}
}

func newEbnfRecognizeCmd() *cobra.Command {
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:   "recognize <input>",
		Short: "Check an input file against an EBNF grammar",
		Long: `Check that an input file is a sentence of an EBNF grammar, matching one
byte at a time. Without --grammar, the grammar of the definition language
is used.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g *earley.Grammar
			var err error
			if grammarFile == "" {
				g, err = earley.Parse("grammar.ebnf", bytes.NewReader(parser.Grammar()), parser.GrammarStart)
			} else {
				var f *os.File
				f, err = os.Open(grammarFile)
				if err != nil {
					return fmt.Errorf("open grammar: %w", err)
				}
				defer f.Close()
				g, err = earley.Parse(grammarFile, f, startProduction)
			}
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}

			input, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			res := g.Recognize(input)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], res)
			if !res.Accepted {
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file")
	cmd.Flags().StringVar(&startProduction, "start", "", "start production of --grammar")

	return cmd
}

func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
