package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newNloxCmd(newDriver()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
