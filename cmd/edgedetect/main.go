// Package main is the edgedetect command.
package main

import (
	"fmt"
	"os"

	"github.com/Fepozopo/edgedetect/pkg/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "edgedetect:", err)
		os.Exit(1)
	}
}
