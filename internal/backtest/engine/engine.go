package engine

import (
	"context"

	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// Lifecycle callback types for backtest phases.
// Callbacks with an error return abort the run when they return an error.

// OnRunStartCallback is called after the data is counted and before the first bar.
type OnRunStartCallback func(runID string, strategyName string, params types.ParameterSet, totalDataPoints int) error

// OnRunEndCallback is called once the run's statistics are computed.
// resultFolderPath is empty when no results folder is set.
type OnRunEndCallback func(runID string, stats types.TradeStatistics, resultFolderPath string)

// OnProcessDataCallback is called for each bar handed to the strategy.
type OnProcessDataCallback func(current int, total int) error

// OnDecisionCallback is called for every non-hold decision.
type OnDecisionCallback func(bar types.MarketData, decision types.Decision)

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnRunEnd      *OnRunEndCallback
	OnProcessData *OnProcessDataCallback
	OnDecision    *OnDecisionCallback
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetDataPath sets the market data file loaded into the data source before
	// each run. Leave it unset for data sources that are already loaded.
	SetDataPath(path string) error
	// SetDataSource sets the data source for the engine.
	SetDataSource(dataSource datasource.DataSource) error
	// SetResultsFolder sets the output directory of the run report. When unset
	// nothing is written to disk.
	SetResultsFolder(folder string) error
	// Run runs the strategy over the data once and returns the run report.
	// The context can be used to cancel the run between bars.
	Run(ctx context.Context, strategy strategy.TradingStrategy, callbacks LifecycleCallbacks) (types.TradeStats, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
