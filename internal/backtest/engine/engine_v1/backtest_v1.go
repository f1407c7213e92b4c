package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/indicator"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/internal/utils"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	dataPath      string
	resultsFolder string
	log           *logger.Logger
	state         *BacktestState
	datasource    datasource.DataSource
}

func NewBacktestEngineV1() engine.Engine {
	return NewBacktestEngineV1WithLogger(nil)
}

// NewBacktestEngineV1WithLogger creates an engine that logs to log. A nil
// logger is replaced by a production logger in Initialize.
func NewBacktestEngineV1WithLogger(log *logger.Logger) *BacktestEngineV1 {
	return &BacktestEngineV1{
		config:        EmptyConfig(),
		dataPath:      "",
		resultsFolder: "",
		log:           log,
		state:         nil,
		datasource:    nil,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	err := yaml.Unmarshal([]byte(config), &b.config)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse backtest config", err)
	}

	if err := b.config.Validate(); err != nil {
		return err
	}

	if b.log == nil {
		var loggerError error

		b.log, loggerError = logger.NewLogger()
		if loggerError != nil {
			return loggerError
		}
	}

	b.log.Debug("Backtest engine initialized",
		zap.String("config", config),
	)

	b.state, err = NewBacktestState(b.log)
	if err != nil {
		return fmt.Errorf("failed to create backtest state: %w", err)
	}

	if err := b.state.Initialize(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to initialize state", err)
	}

	return nil
}

// SetDataPath implements engine.Engine.
func (b *BacktestEngineV1) SetDataPath(path string) error {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeBacktestDataPathError, err, "failed to resolve data path %q", path)
	}

	b.dataPath = absolutePath

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(datasource datasource.DataSource) error {
	b.datasource = datasource

	return nil
}

// Config returns the parsed configuration.
func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, tradingStrategy strategy.TradingStrategy, callbacks engine.LifecycleCallbacks) (types.TradeStats, error) {
	if err := b.preRunCheck(tradingStrategy); err != nil {
		return types.TradeStats{}, err
	}

	defer func() {
		if err := b.cleanUpRun(); err != nil {
			b.log.Warn("Failed to clean up run", zap.Error(err))
		}
	}()

	if b.dataPath != "" {
		if err := b.datasource.Initialize(b.dataPath); err != nil {
			return types.TradeStats{}, fmt.Errorf("failed to initialize data source: %w", err)
		}
	}

	feed, err := indicator.NewFeed(tradingStrategy.FeedConfig())
	if err != nil {
		return types.TradeStats{}, err
	}

	count, err := b.datasource.Count(b.config.StartTime, b.config.EndTime)
	if err != nil {
		return types.TradeStats{}, fmt.Errorf("failed to get data count: %w", err)
	}

	if err := feed.CheckSufficient(count, b.dataPath); err != nil {
		// not fatal: the run simply produces no trades
		b.log.Warn("Not enough bars for the indicators",
			zap.String("strategy", tradingStrategy.Name()),
			zap.Stringer("params", tradingStrategy.Parameters()),
			zap.Error(err),
		)
	}

	runID := uuid.New().String()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, tradingStrategy.Name(), tradingStrategy.Parameters(), count); err != nil {
			return types.TradeStats{}, errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback failed", err)
		}
	}

	tradingSystem := NewBacktestTrading(b.state, b.log, b.config.InitialCapital, b.config.CommissionFee())
	strategyContext := strategy.StrategyContext{
		Adapter: tradingSystem,
		Logger:  b.log,
	}

	symbol := ""

	for item, err := range feed.Stream(b.datasource.ReadAll(b.config.StartTime, b.config.EndTime)) {
		if err != nil {
			return types.TradeStats{}, fmt.Errorf("failed to read data: %w", err)
		}

		if ctx.Err() != nil {
			return types.TradeStats{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", ctx.Err())
		}

		symbol = item.Bar.Symbol
		tradingSystem.UpdateCurrentMarketData(item.Bar)

		decision, err := tradingStrategy.ProcessData(strategyContext, item)
		if err != nil {
			return types.TradeStats{}, fmt.Errorf("failed to process data: %w", err)
		}

		if callbacks.OnDecision != nil && decision != types.DecisionHold {
			(*callbacks.OnDecision)(item.Bar, decision)
		}

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(item.Index+1, count); err != nil {
				return types.TradeStats{}, errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback failed", err)
			}
		}
	}

	statistics, err := b.state.Statistics(tradingSystem.OpenTrades())
	if err != nil {
		return types.TradeStats{}, fmt.Errorf("failed to get stats: %w", err)
	}

	report := types.TradeStats{
		ID:             runID,
		Timestamp:      time.Now(),
		Symbol:         symbol,
		Strategy:       tradingStrategy.Name(),
		Parameters:     tradingStrategy.Parameters().Map(),
		Statistics:     statistics,
		StartValue:     b.config.InitialCapital,
		EndValue:       utils.RoundToDecimalPrecision(tradingSystem.Value(), b.config.DecimalPrecision),
		TotalFees:      utils.RoundToDecimalPrecision(tradingSystem.TotalFees(), b.config.DecimalPrecision),
		TradesFilePath: "",
		DataPath:       b.dataPath,
	}

	b.log.Info("End Value",
		zap.String("strategy", tradingStrategy.Name()),
		zap.Stringer("params", tradingStrategy.Parameters()),
		zap.Float64("end_value", report.EndValue),
		zap.Float64("end_cash", tradingSystem.Cash()),
		zap.Int("total_trades", statistics.TotalTrades),
		zap.Float64("pnl_net", statistics.PnlNet),
	)

	resultFolderPath := ""

	if b.resultsFolder != "" {
		resultFolderPath = getResultFolder(b, tradingStrategy)

		if err := b.writeResults(&report, resultFolderPath); err != nil {
			return types.TradeStats{}, fmt.Errorf("failed to write results: %w", err)
		}
	}

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(runID, statistics, resultFolderPath)
	}

	return report, nil
}

func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) writeResults(report *types.TradeStats, resultFolderPath string) error {
	tradesPath, err := b.state.Write(resultFolderPath)
	if err != nil {
		return err
	}

	report.TradesFilePath = tradesPath

	if err := types.WriteTradeStats(filepath.Join(resultFolderPath, "stats.yaml"), *report); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteError, "failed to write stats", err)
	}

	return nil
}

func (b *BacktestEngineV1) cleanUpRun() error {
	if b.state == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "backtest state is nil")
	}

	if err := b.state.Cleanup(); err != nil {
		return fmt.Errorf("failed to cleanup state: %w", err)
	}

	return nil
}

func (b *BacktestEngineV1) preRunCheck(tradingStrategy strategy.TradingStrategy) error {
	if b.log == nil || b.state == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "engine is not initialized")
	}

	if tradingStrategy == nil {
		b.log.Error("No strategy given")

		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategy given")
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	return nil
}

// Close releases the state database.
func (b *BacktestEngineV1) Close() error {
	if b.state == nil {
		return nil
	}

	return b.state.Close()
}
