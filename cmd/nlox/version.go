package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nlox version",
		Args:  cobra.NoArgs,
		Run: d.runFunc(func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(d.stdout, "nlox %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		}),
	}
}
