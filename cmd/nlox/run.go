package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/nlox/pkg/engine"
)

func newRunCmd(d *driver) *cobra.Command {
	var gas int
	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Run programs in order, sharing one global scope",
		Long: "Run programs in order, sharing one global scope.\n\n" +
			"Execution stops at the first failing file. A FILE of - reads standard input.",
		Args: cobra.MinimumNArgs(1),
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			session := engine.NewSession(d.stdout)
			session.SetGasLimit(gas)
			for _, path := range args {
				src, err := d.readSource(path)
				if err != nil {
					return err
				}
				if err := session.Exec(src); err != nil {
					d.reporter(path).Report(src, err)
					return reported{err}
				}
			}
			return nil
		}),
	}

	cmd.Flags().IntVar(&gas, "gas", 0, "Maximum statements each file may execute (0 means unlimited)")
	return cmd
}

func (d *driver) readSource(path string) (string, error) {
	var (
		src []byte
		err error
	)
	if path == "-" {
		src, err = io.ReadAll(d.stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(src), nil
}
