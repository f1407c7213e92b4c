package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-macdrsi/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Backtest the MACD/RSI strategy on historical bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one backtest, or sweep the parameter grid with --optimize",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the backtest config file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Parquet or CSV file with the bars (glob patterns allowed)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "optimize",
						Usage: "Sweep the parameter grid. Overrides `optimize` in the config",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Folder for the results",
						Value:   "results",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Parallel runs in sweep mode. Overrides sweep.workers in the config",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Rows of the ranked table to print",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "debug, info, warn or error. debug logs every decision",
						Value: "info",
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Action: schemaAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := ConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}
