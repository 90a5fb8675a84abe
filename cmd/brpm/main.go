package main

import (
	"os"

	"github.com/the-gball/cloud-init-rax-pkg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
