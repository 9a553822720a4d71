package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/datasource"
	"github.com/rxtech-lab/argo-series/pkg/runner"
	"github.com/urfave/cli/v3"
)

// computeAction loads the config, runs the computation and prints the run
// directory the results were written to.
func computeAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := runner.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewDevelopmentLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	runDir, err := runner.NewRunner(config, log).Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Println(runDir)

	return nil
}

// schemaAction prints the JSON schema of the config format, for editor
// integration.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := runner.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

// downloadAction fetches historical klines from Binance and writes them as
// a bar CSV usable as a compute data source.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	symbol := cmd.String("symbol")
	interval := types.Interval(cmd.String("interval"))
	start := cmd.Timestamp("start")
	end := cmd.Timestamp("end")
	output := cmd.String("output")

	log, err := logger.NewDevelopmentLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	source := datasource.NewBinanceSource(log)

	bars, err := source.Klines(ctx, symbol, interval, start, end)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if err := datasource.WriteBarsCSV(output, bars); err != nil {
		return fmt.Errorf("failed to write bars: %w", err)
	}

	fmt.Printf("Wrote %d bars to %s\n", len(bars), output)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "argo-series",
		Usage: "Incremental indicator computation over OHLCV series",
		Commands: []*cli.Command{
			{
				Name:  "compute",
				Usage: "Compute configured indicators over a bar file and write results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML run config",
						Required: true,
					},
				},
				Action: computeAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the run config format",
				Action: schemaAction,
			},
			{
				Name:  "download",
				Usage: "Download historical klines from Binance into a bar CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"s"},
						Usage:    "Trading symbol, e.g. BTCUSDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "interval",
						Value: string(types.Interval1d),
						Usage: "Kline interval, e.g. 1m, 1h, 1d",
					},
					&cli.TimestampFlag{
						Name:  "start",
						Usage: "Start date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
						Value: time.Now().AddDate(0, -1, 0),
					},
					&cli.TimestampFlag{
						Name:  "end",
						Usage: "End date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
						Value: time.Now(),
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path of the CSV file to write",
						Required: true,
					},
				},
				Action: downloadAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
