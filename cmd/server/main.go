package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "medinbox",
		Usage:   "Clinical inbox API: conversations, search, and message actions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fixtures",
				Aliases: []string{"f"},
				Usage:   "Load seed data from `FILE` instead of the bundled seed",
				EnvVars: []string{"FIXTURES_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			statsCommand(),
			inboxCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
