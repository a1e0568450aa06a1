package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agenthands/nlox/pkg/config"
	"github.com/agenthands/nlox/pkg/diag"
)

// driver carries the process-wide state every command shares.
type driver struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	exit   func(code int)

	cfg *config.Config
}

func newDriver() *driver {
	return &driver{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
		cfg:    config.Default(),
	}
}

// reporter renders diagnostics for file (may be empty) on stderr.
func (d *driver) reporter(file string) *diag.Reporter {
	return &diag.Reporter{
		Out:     d.stderr,
		File:    file,
		Color:   d.cfg.UseColor(isTerminal(d.stderr)),
		Excerpt: d.cfg.Excerpt,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// reported marks an error whose diagnostics were already written.
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

// runFunc wraps a command so that a failure is reported once and turns into a
// non-zero exit, instead of cobra printing usage.
func (d *driver) runFunc(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		err := run(cmd, args)
		if err == nil {
			return
		}
		var done reported
		if errors.As(err, &done) {
			glog.V(3).Infof("%s: %s", cmd.Name(), errorMessage(done.error))
		} else {
			fmt.Fprintf(d.stderr, "error: %s\n", errorMessage(err))
		}
		glog.Flush()
		d.exit(1)
	}
}

// errorMessage flattens multierrors into a numbered list.
func errorMessage(err error) string {
	if multi, ok := err.(*multierror.Error); ok {
		wr := multi.WrappedErrors()
		if len(wr) == 1 {
			return errorMessage(wr[0])
		}
		msg := fmt.Sprintf("%d errors occurred:", len(wr))
		for i, werr := range wr {
			msg += fmt.Sprintf("\n    %d) %s", i+1, errorMessage(werr))
		}
		return msg
	}
	return err.Error()
}

// initLogging pokes glog's flags, the only way to configure it.
func initLogging(logToStderr bool, verbose int) {
	if !flag.Parsed() {
		_ = flag.CommandLine.Parse(nil)
	}
	if logToStderr {
		_ = flag.Lookup("logtostderr").Value.Set("true")
	}
	if verbose > 0 {
		_ = flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
	}
}
