package strategy

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/indicator"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"go.uber.org/zap"
)

// StrategyName is the name of the MACD/RSI strategy. It prefixes result files.
const StrategyName = "macd_rsi"

// rsiEntryThreshold is the RSI level an entry must stay below.
const rsiEntryThreshold = 50.0

// Decide maps one bar to a decision. Rules are checked in order:
//
//  1. the last bar always liquidates;
//  2. a bullish crossover while the MACD line is negative and RSI is below 50
//     enters long when flat;
//  3. a bearish crossover while the MACD line is positive exits a one unit long;
//  4. anything else holds.
func Decide(snapshot types.IndicatorSnapshot, position types.PositionState, isLastBar bool) types.Decision {
	if isLastBar {
		return types.DecisionLiquidate
	}

	if snapshot.CrossoverSign > 0 && snapshot.MACDLine < 0 && snapshot.RSI < rsiEntryThreshold && position.IsFlat() {
		return types.DecisionEnterLong
	}

	// strict equality: the stake is one unit, so a long position is exactly size 1
	if snapshot.CrossoverSign < 0 && snapshot.MACDLine > 0 && position.Size == 1 {
		return types.DecisionExitLong
	}

	return types.DecisionHold
}

// MACDRSIStrategy buys a MACD turn up in negative territory and sells the turn down
// in positive territory, one unit at a time.
type MACDRSIStrategy struct {
	config Config
}

// NewMACDRSIStrategy creates the strategy with the default periods.
func NewMACDRSIStrategy() *MACDRSIStrategy {
	return &MACDRSIStrategy{
		config: DefaultConfig(),
	}
}

// NewMACDRSIStrategyWithConfig creates the strategy with validated periods.
func NewMACDRSIStrategyWithConfig(config Config) (*MACDRSIStrategy, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MACDRSIStrategy{
		config: config,
	}, nil
}

// NewMACDRSIStrategyFromParameters creates the strategy for one sweep combination.
func NewMACDRSIStrategyFromParameters(params types.ParameterSet) (*MACDRSIStrategy, error) {
	config, err := ConfigFromParameters(params)
	if err != nil {
		return nil, err
	}

	return &MACDRSIStrategy{
		config: config,
	}, nil
}

func (s *MACDRSIStrategy) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}

	s.config = parsed

	return nil
}

func (s *MACDRSIStrategy) Name() string {
	return StrategyName
}

func (s *MACDRSIStrategy) Config() Config {
	return s.config
}

func (s *MACDRSIStrategy) FeedConfig() indicator.FeedConfig {
	return s.config.FeedConfig()
}

func (s *MACDRSIStrategy) Parameters() types.ParameterSet {
	return s.config.Parameters()
}

// ProcessData reads the position from the adapter, decides and places at most
// one order. A buy rejected for lack of cash is logged and the run goes on.
func (s *MACDRSIStrategy) ProcessData(ctx StrategyContext, item indicator.FeedItem) (types.Decision, error) {
	position := types.PositionState{Size: ctx.Adapter.CurrentPositionSize()}
	decision := Decide(item.Snapshot, position, item.IsLastBar)

	if ctx.Logger != nil && decision != types.DecisionHold {
		ctx.Logger.Debug("decision",
			zap.Time("time", item.Bar.Time),
			zap.String("decision", string(decision)),
			zap.Float64("close", item.Bar.Close),
			zap.Float64("macd", item.Snapshot.MACDLine),
			zap.Float64("macd_signal", item.Snapshot.MACDSignalLine),
			zap.Float64("rsi", item.Snapshot.RSI),
			zap.Int("position", position.Size),
		)
	}

	err := dispatch(ctx, decision)
	if err == nil {
		return decision, nil
	}

	if errors.HasCode(err, errors.ErrCodeInsufficientBuyingPower) {
		if ctx.Logger != nil {
			ctx.Logger.Warn("order rejected",
				zap.Time("time", item.Bar.Time),
				zap.String("decision", string(decision)),
				zap.Error(err),
			)
		}

		return decision, nil
	}

	return decision, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to execute %s", decision)
}

func dispatch(ctx StrategyContext, decision types.Decision) error {
	switch decision {
	case types.DecisionEnterLong:
		return ctx.Adapter.EnterLong()
	case types.DecisionExitLong:
		return ctx.Adapter.ExitLong()
	case types.DecisionLiquidate:
		return ctx.Adapter.CloseAll()
	case types.DecisionHold:
		return nil
	default:
		return errors.Newf(errors.ErrCodeUnknownDecision, "unknown decision %q", decision)
	}
}
