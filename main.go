package main

import (
	"fmt"
	"os"

	"github.com/sadopc/timebill/internal/cli"
	"github.com/sadopc/timebill/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	return cli.NewRootCmd(cli.NewApp()).Execute()
}
