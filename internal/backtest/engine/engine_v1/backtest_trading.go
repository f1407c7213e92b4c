package engine

import (
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/trading"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/internal/utils"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// stake is the number of units bought per entry.
const stake = 1

// BacktestTrading is the simulated broker of a backtest run. Market orders
// fill immediately at the close of the current bar.
type BacktestTrading struct {
	state      *BacktestState
	logger     *logger.Logger
	commission commission_fee.CommissionFee

	cash       decimal.Decimal
	totalFees  decimal.Decimal
	marketData optional.Option[types.MarketData]
	position   optional.Option[types.OpenPosition]
}

var _ trading.ExecutionAdapter = (*BacktestTrading)(nil)

func NewBacktestTrading(state *BacktestState, logger *logger.Logger, initialCash float64, commission commission_fee.CommissionFee) *BacktestTrading {
	return &BacktestTrading{
		state:      state,
		logger:     logger,
		commission: commission,
		cash:       decimal.NewFromFloat(initialCash),
		totalFees:  decimal.Zero,
		marketData: optional.None[types.MarketData](),
		position:   optional.None[types.OpenPosition](),
	}
}

// UpdateCurrentMarketData sets the bar orders fill against.
func (b *BacktestTrading) UpdateCurrentMarketData(marketData types.MarketData) {
	b.marketData = optional.Some(marketData)
}

// EnterLong implements trading.ExecutionAdapter.
func (b *BacktestTrading) EnterLong() error {
	bar, err := b.currentBar()
	if err != nil {
		return err
	}

	if b.position.IsSome() {
		return errors.Newf(errors.ErrCodePositionAlreadyOpen, "a %s position is already open", bar.Symbol)
	}

	if utils.CalculateMaxQuantity(b.cash.InexactFloat64(), bar.Close, b.commission) < stake {
		return errors.Newf(errors.ErrCodeInsufficientBuyingPower,
			"cash %s cannot buy %d %s at %v", b.cash.String(), stake, bar.Symbol, bar.Close)
	}

	cost, fee := utils.OrderCost(stake, bar.Close, b.commission)
	b.cash = b.cash.Sub(cost)
	b.totalFees = b.totalFees.Add(fee)

	b.position = optional.Some(types.OpenPosition{
		Symbol:       bar.Symbol,
		PositionType: types.PositionTypeLong,
		Quantity:     stake,
		EntryTime:    bar.Time,
		EntryPrice:   bar.Close,
		EntryFee:     fee.InexactFloat64(),
	})

	b.logger.Debug("buy executed",
		zap.Time("time", bar.Time),
		zap.Float64("price", bar.Close),
		zap.Float64("fee", fee.InexactFloat64()),
		zap.String("cash", b.cash.String()),
	)

	return nil
}

// ExitLong implements trading.ExecutionAdapter.
func (b *BacktestTrading) ExitLong() error {
	return b.closePosition(types.TradeReasonSignal)
}

// CloseAll implements trading.ExecutionAdapter.
func (b *BacktestTrading) CloseAll() error {
	return b.closePosition(types.TradeReasonLiquidate)
}

// CurrentPositionSize implements trading.ExecutionAdapter.
func (b *BacktestTrading) CurrentPositionSize() int {
	if b.position.IsNone() {
		return 0
	}

	return int(b.position.Unwrap().Quantity)
}

func (b *BacktestTrading) closePosition(reason string) error {
	if b.position.IsNone() {
		return nil
	}

	bar, err := b.currentBar()
	if err != nil {
		return err
	}

	position := b.position.Unwrap()

	qty := decimal.NewFromFloat(position.Quantity)
	exitPrice := decimal.NewFromFloat(bar.Close)
	entryFee := decimal.NewFromFloat(position.EntryFee)
	exitFee := decimal.NewFromFloat(b.commission.Calculate(position.Quantity, bar.Close))

	gross := exitPrice.Sub(decimal.NewFromFloat(position.EntryPrice)).Mul(qty)
	net := gross.Sub(entryFee).Sub(exitFee)

	trade := types.Trade{
		ID:           uuid.New().String(),
		Symbol:       position.Symbol,
		PositionType: position.PositionType,
		Quantity:     position.Quantity,
		EntryTime:    position.EntryTime,
		EntryPrice:   position.EntryPrice,
		EntryFee:     position.EntryFee,
		ExitTime:     bar.Time,
		ExitPrice:    bar.Close,
		ExitFee:      exitFee.InexactFloat64(),
		PnlGross:     gross.InexactFloat64(),
		PnlNet:       net.InexactFloat64(),
		ExitReason:   reason,
	}

	if err := b.state.RecordTrade(trade); err != nil {
		return err
	}

	b.cash = b.cash.Add(exitPrice.Mul(qty)).Sub(exitFee)
	b.totalFees = b.totalFees.Add(exitFee)
	b.position = optional.None[types.OpenPosition]()

	b.logger.Debug("sell executed",
		zap.Time("time", bar.Time),
		zap.String("reason", reason),
		zap.Float64("price", bar.Close),
		zap.String("pnl_net", net.String()),
		zap.String("cash", b.cash.String()),
	)

	return nil
}

func (b *BacktestTrading) currentBar() (types.MarketData, error) {
	if b.marketData.IsNone() {
		return types.MarketData{}, errors.New(errors.ErrCodeMarketDataMissing, "no market data to fill the order against")
	}

	return b.marketData.Unwrap(), nil
}

// Cash returns the free cash.
func (b *BacktestTrading) Cash() float64 {
	return b.cash.InexactFloat64()
}

// Value returns cash plus the open position marked at the current close.
func (b *BacktestTrading) Value() float64 {
	value := b.cash

	if b.position.IsSome() && b.marketData.IsSome() {
		position := b.position.Unwrap()
		value = value.Add(decimal.NewFromFloat(position.Quantity).Mul(decimal.NewFromFloat(b.marketData.Unwrap().Close)))
	}

	return value.InexactFloat64()
}

// TotalFees returns the commission paid so far.
func (b *BacktestTrading) TotalFees() float64 {
	return b.totalFees.InexactFloat64()
}

// OpenTrades returns 1 while a position is open.
func (b *BacktestTrading) OpenTrades() int {
	if b.position.IsSome() {
		return 1
	}

	return 0
}
