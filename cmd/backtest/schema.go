package main

import (
	"context"
	"fmt"

	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the engine config or of a strategy's params",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Print the params schema of this strategy instead",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var (
				schema string
				err    error
			)

			if name := cmd.String("strategy"); name != "" {
				schema, err = strategy.ParamsSchema(name)
			} else {
				schema, err = engine.NewBacktestEngineV1().GetConfigSchema()
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, schema)

			return nil
		},
	}
}

func strategiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "strategies",
		Usage: "List the registered strategies",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, name := range strategy.NewDefaultRegistry().List() {
				fmt.Fprintln(cmd.Root().Writer, name)
			}

			return nil
		},
	}
}
