package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine"
	v1 "github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/sweep"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// runOptions are the resolved inputs of the run command.
type runOptions struct {
	Config   FileConfig
	DataPath string
	Output   string
	Optimize bool
	Workers  int
	Top      int
	Stdout   io.Writer
	Progress io.Writer
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	config, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	options := runOptions{
		Config:   config,
		DataPath: cmd.String("data"),
		Output:   cmd.String("output"),
		Optimize: config.Optimize,
		Workers:  config.Sweep.Workers,
		Top:      int(cmd.Int("top")),
		Stdout:   os.Stdout,
		Progress: os.Stderr,
	}

	if cmd.IsSet("optimize") {
		options.Optimize = cmd.Bool("optimize")
	}

	if cmd.IsSet("workers") {
		options.Workers = int(cmd.Int("workers"))
	}

	return run(ctx, log, options)
}

func run(ctx context.Context, log *logger.Logger, options runOptions) error {
	source, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return err
	}
	defer source.Close()

	if options.Optimize {
		return runSweep(ctx, log, source, options)
	}

	return runSingle(ctx, log, source, options)
}

func runSingle(ctx context.Context, log *logger.Logger, source datasource.DataSource, options runOptions) error {
	engineConfig, err := options.Config.EngineYAML()
	if err != nil {
		return err
	}

	strategyConfig, err := options.Config.StrategyYAML()
	if err != nil {
		return err
	}

	macdRSI := strategy.NewMACDRSIStrategy()
	if err := macdRSI.Initialize(strategyConfig); err != nil {
		return err
	}

	backtester := v1.NewBacktestEngineV1WithLogger(log)
	if err := backtester.Initialize(engineConfig); err != nil {
		return err
	}
	defer backtester.Close()

	if err := backtester.SetDataSource(source); err != nil {
		return err
	}

	if err := backtester.SetDataPath(options.DataPath); err != nil {
		return err
	}

	if err := backtester.SetResultsFolder(options.Output); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	onStart := engine.OnRunStartCallback(func(runID string, strategyName string, params types.ParameterSet, totalDataPoints int) error {
		bar = progressbar.NewOptions(totalDataPoints,
			progressbar.OptionSetWriter(options.Progress),
			progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %s", strategyName)),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(options.Progress)
			}),
		)

		return nil
	})
	onProcessData := engine.OnProcessDataCallback(func(current int, total int) error {
		return bar.Set(current)
	})
	onDecision := engine.OnDecisionCallback(func(data types.MarketData, decision types.Decision) {
		log.Debug("decision",
			zap.Time("time", data.Time),
			zap.String("decision", string(decision)),
			zap.Float64("close", data.Close),
		)
	})

	report, err := backtester.Run(ctx, macdRSI, engine.LifecycleCallbacks{
		OnRunStart:    &onStart,
		OnRunEnd:      nil,
		OnProcessData: &onProcessData,
		OnDecision:    &onDecision,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(options.Stdout, RenderReport(report))

	return err
}

func runSweep(ctx context.Context, log *logger.Logger, source datasource.DataSource, options runOptions) error {
	if err := source.Initialize(options.DataPath); err != nil {
		return err
	}

	engineConfig, err := options.Config.EngineYAML()
	if err != nil {
		return err
	}

	strategyConfig, err := options.Config.StrategyYAML()
	if err != nil {
		return err
	}

	base, err := strategy.ParseConfig(strategyConfig)
	if err != nil {
		return err
	}

	grid, err := sweep.NewParameterGrid(options.Config.Sweep.Ranges)
	if err != nil {
		return err
	}

	runner, err := sweep.NewRunner(sweep.RunnerOptions{
		EngineConfig: engineConfig,
		Strategy:     base,
		Grid:         grid,
		Workers:      options.Workers,
		OutputDir:    options.Output,
		Logger:       log,
		Progress:     options.Progress,
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, source)
	if errors.HasCode(err, errors.ErrCodeEmptySweep) {
		_, err = fmt.Fprintln(options.Stdout, HelpStyle.Render("no data: no parameter combination produced a trade"))

		return err
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(options.Stdout, "%s\nWrote %s\n", RenderRanking(result.Table, options.Top), result.Path)

	return err
}
