package main

import (
	"fmt"
	"os"

	"macremote/cli"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
