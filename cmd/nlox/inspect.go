package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/nlox/pkg/compiler/lexer"
	"github.com/agenthands/nlox/pkg/compiler/printer"
	"github.com/agenthands/nlox/pkg/engine"
)

func newTokensCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a program",
		Args:  cobra.ExactArgs(1),
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			src, err := d.readSource(args[0])
			if err != nil {
				return err
			}
			toks, err := lexer.ScanAll(src)
			if err != nil {
				d.reporter(args[0]).Report(src, err)
				return reported{err}
			}

			w := tabwriter.NewWriter(d.stdout, 0, 8, 1, ' ', 0)
			for _, tok := range toks {
				if tok.Kind.IsLiteral() {
					fmt.Fprintf(w, "%s\t%s\t%#v\n", tok.Start, tok, tok.Literal)
				} else {
					fmt.Fprintf(w, "%s\t%s\t\n", tok.Start, tok)
				}
			}
			return w.Flush()
		}),
	}
}

func newASTCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a program as S-expressions",
		Args:  cobra.ExactArgs(1),
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			src, err := d.readSource(args[0])
			if err != nil {
				return err
			}
			stmts, err := engine.ScanAndParse(src)
			if err != nil {
				d.reporter(args[0]).Report(src, err)
				return reported{err}
			}
			return printer.Fprint(d.stdout, stmts)
		}),
	}
}

func newCheckCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Scan and parse programs without running them",
		Long: "Scan and parse programs without running them.\n\n" +
			"Every file is checked; the command fails if any of them does.",
		Args: cobra.MinimumNArgs(1),
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			for _, path := range args {
				src, err := d.readSource(path)
				if err != nil {
					d.reporter("").Report("", err)
					result = multierror.Append(result, err)
					continue
				}
				if _, err := engine.ScanAndParse(src); err != nil {
					d.reporter(path).Report(src, err)
					result = multierror.Append(result, errors.Wrap(err, path))
					continue
				}
				fmt.Fprintf(d.stdout, "%s: ok\n", path)
			}
			if err := result.ErrorOrNil(); err != nil {
				return reported{err}
			}
			return nil
		}),
	}
}
