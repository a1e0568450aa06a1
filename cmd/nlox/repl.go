package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/nlox/pkg/engine"
)

const replHelp = `:env    list the visible variables
:reset  forget every variable
:quit   leave the REPL
:help   show this message`

func newReplCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read and run statements line by line",
		Args:  cobra.NoArgs,
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			return d.repl()
		}),
	}
}

// repl runs each input line as its own chunk. Errors are reported and the
// loop goes on with whatever the failing line already bound.
func (d *driver) repl() error {
	session := engine.NewSession(d.stdout)
	in := bufio.NewScanner(d.stdin)
	for {
		fmt.Fprint(d.stdout, d.cfg.Prompt)
		if !in.Scan() {
			fmt.Fprintln(d.stdout)
			return errors.Wrap(in.Err(), "reading input")
		}

		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case ":quit":
			return nil
		case ":reset":
			session.Reset()
			continue
		case ":env":
			env := session.Environment()
			snap := env.Snapshot()
			for _, name := range env.Names() {
				fmt.Fprintf(d.stdout, "%s = %#v\n", name, snap[name])
			}
			continue
		case ":help":
			fmt.Fprintln(d.stdout, replHelp)
			continue
		}

		if err := session.Exec(line); err != nil {
			d.reporter("").Report(line, err)
		}
	}
}
