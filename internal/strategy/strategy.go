package strategy

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/indicator"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/trading"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// StrategyContext is what the engine hands the strategy on every bar.
type StrategyContext struct {
	// Adapter places orders and reports the current position
	Adapter trading.ExecutionAdapter
	// Logger is the run's logger
	Logger *logger.Logger
}

// TradingStrategy is driven by the backtest engine once per emitted feed item.
type TradingStrategy interface {
	// Initialize configures the strategy from a YAML document.
	Initialize(config string) error
	// ProcessData decides on the item and forwards the decision to the adapter.
	ProcessData(ctx StrategyContext, item indicator.FeedItem) (types.Decision, error)
	// FeedConfig returns the indicator periods the strategy needs.
	FeedConfig() indicator.FeedConfig
	// Parameters returns the parameter set of this instance.
	Parameters() types.ParameterSet
	// Name returns the name of the strategy
	Name() string
}
