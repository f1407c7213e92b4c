package sweep

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine"
	v1 "github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config is the sweep section of the config file.
type Config struct {
	// Workers bounds the number of runs in flight. Zero means one per CPU.
	Workers int              `yaml:"workers" json:"workers" validate:"gte=0" jsonschema:"title=Workers,description=Parallel backtest runs (0 uses every CPU),minimum=0"`
	Ranges  []ParameterRange `yaml:"ranges" json:"ranges" jsonschema:"title=Ranges,description=Swept parameters in column order"`
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// EngineConfig is the YAML handed to every run's engine.
	EngineConfig string
	// Strategy holds the values of the parameters the grid does not sweep.
	// The zero value means the strategy defaults.
	Strategy strategy.Config
	Grid     *ParameterGrid
	Workers  int
	// OutputDir receives the ranked table. Empty means nothing is written.
	OutputDir string
	Logger    *logger.Logger
	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
}

// RunResult is the outcome of one parameter set.
type RunResult struct {
	Parameters types.ParameterSet
	Report     types.TradeStats
}

// Result is the outcome of a sweep.
type Result struct {
	Runs []RunResult
	// Skipped lists the combinations the strategy rejected, such as fast == slow.
	Skipped []types.ParameterSet
	Table   types.RankedResultTable
	// Path is the written table, empty when nothing was written.
	Path string
}

// Runner backtests every combination of a ParameterGrid over the same bars.
type Runner struct {
	options RunnerOptions
	writer  *ResultTableWriter
}

func NewRunner(options RunnerOptions) (*Runner, error) {
	if options.Grid == nil {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "no parameter grid given")
	}

	if options.Workers < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidGrid, "workers must not be negative, got %d", options.Workers)
	}

	if options.Workers == 0 {
		options.Workers = runtime.NumCPU()
	}

	if options.Logger == nil {
		options.Logger = logger.NewNopLogger()
	}

	if options.Strategy == (strategy.Config{}) {
		options.Strategy = strategy.DefaultConfig()
	}

	return &Runner{
		options: options,
		writer:  NewResultTableWriter(options.OutputDir),
	}, nil
}

// Run loads the bars of source once and backtests every valid combination
// in parallel. Runs share nothing but the read-only bars. Results are
// extracted and ranked only after every run has finished. When no run traded
// the partial result is returned with ErrCodeEmptySweep and no file is written.
func (r *Runner) Run(ctx context.Context, source datasource.DataSource) (Result, error) {
	log := r.options.Logger

	bars, err := datasource.Preload(source, optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return Result{}, err
	}

	combinations := r.options.Grid.Combinations()
	strategies := make([]*strategy.MACDRSIStrategy, 0, len(combinations))
	runParams := make([]types.ParameterSet, 0, len(combinations))

	var skipped []types.ParameterSet

	for _, params := range combinations {
		config, err := r.options.Strategy.WithParameters(params)
		if err != nil {
			log.Warn("Skipping invalid parameter combination",
				zap.Stringer("params", params),
				zap.Error(err),
			)

			skipped = append(skipped, params)

			continue
		}

		s, err := strategy.NewMACDRSIStrategyWithConfig(config)
		if err != nil {
			return Result{}, err
		}

		strategies = append(strategies, s)
		runParams = append(runParams, params)
	}

	log.Info("Starting sweep",
		zap.Int("bars", len(bars)),
		zap.Int("combinations", len(combinations)),
		zap.Int("runs", len(strategies)),
		zap.Int("skipped", len(skipped)),
		zap.Int("workers", r.options.Workers),
	)

	bar := r.newProgressBar(len(strategies))
	runs := make([]RunResult, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Workers)

	for i, s := range strategies {
		g.Go(func() error {
			report, err := r.runOne(gctx, bars, s)
			if err != nil {
				return errors.Wrapf(errors.ErrCodeSweepRunFailed, err, "run %s failed", runParams[i])
			}

			runs[i] = RunResult{Parameters: runParams[i], Report: report}
			_ = bar.Add(1)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	_ = bar.Finish()

	result := Result{
		Runs:    runs,
		Skipped: skipped,
		Table:   nil,
		Path:    "",
	}

	records := lo.FilterMap(runs, func(run RunResult, _ int) (types.ResultRecord, bool) {
		record := Extract(run.Report.Statistics, run.Parameters)
		if record.IsNone() {
			return types.ResultRecord{}, false
		}

		return record.Unwrap(), true
	})

	result.Table, err = Rank(records)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeEmptySweep) {
			log.Warn("no data", zap.Int("runs", len(runs)))
		}

		return result, err
	}

	if r.options.OutputDir != "" {
		result.Path, err = r.writer.Write(result.Table)
		if err != nil {
			return result, err
		}

		log.Info("Wrote ranked results",
			zap.String("path", result.Path),
			zap.Int("rows", len(result.Table)),
		)
	}

	return result, nil
}

// runOne backtests one strategy with its own engine, state and data source.
func (r *Runner) runOne(ctx context.Context, bars []types.MarketData, s *strategy.MACDRSIStrategy) (types.TradeStats, error) {
	backtester := v1.NewBacktestEngineV1WithLogger(logger.NewNopLogger())
	if err := backtester.Initialize(r.options.EngineConfig); err != nil {
		return types.TradeStats{}, err
	}
	defer backtester.Close()

	if err := backtester.SetDataSource(datasource.NewInMemoryDataSource(bars)); err != nil {
		return types.TradeStats{}, err
	}

	return backtester.Run(ctx, s, engine.LifecycleCallbacks{})
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	if r.options.Progress == nil {
		return progressbar.DefaultSilent(int64(total))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.options.Progress),
		progressbar.OptionSetDescription(fmt.Sprintf("Sweeping %s", strategy.StrategyName)),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.options.Progress)
		}),
	)
}
