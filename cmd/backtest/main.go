package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Backtest trading strategies on historical bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			compareCommand(),
			statsCommand(),
			schemaCommand(),
			strategiesCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
