package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "tacomemo",
		Usage:   "Restaurant website backend",
		Version: version,
		Action:  serve,
		Commands: []*cli.Command{
			serveCmd(),
			imagesCmd(),
			emailCmd(),
		},
	}
}
