package types

import (
	"time"
)

type PositionType string

const (
	PositionTypeLong  PositionType = "LONG"
	PositionTypeShort PositionType = "SHORT"
)

const (
	TradeReasonSignal    string = "signal"
	TradeReasonLiquidate string = "liquidate"
)

// Trade is one completed round trip: an entry fill and the exit fill that closed it.
type Trade struct {
	ID           string       `yaml:"id" json:"id" csv:"id"`
	Symbol       string       `yaml:"symbol" json:"symbol" csv:"symbol"`
	PositionType PositionType `yaml:"position_type" json:"position_type" csv:"position_type"`
	Quantity     float64      `yaml:"quantity" json:"quantity" csv:"quantity"`
	EntryTime    time.Time    `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	EntryPrice   float64      `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	EntryFee     float64      `yaml:"entry_fee" json:"entry_fee" csv:"entry_fee"`
	ExitTime     time.Time    `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	ExitPrice    float64      `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	ExitFee      float64      `yaml:"exit_fee" json:"exit_fee" csv:"exit_fee"`
	// PnlGross is (exit - entry) * quantity for longs and the reverse for shorts.
	PnlGross float64 `yaml:"pnl_gross" json:"pnl_gross" csv:"pnl_gross"`
	// PnlNet is PnlGross minus both fees.
	PnlNet float64 `yaml:"pnl_net" json:"pnl_net" csv:"pnl_net"`
	// ExitReason is TradeReasonSignal or TradeReasonLiquidate.
	ExitReason string `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
}

// IsWon reports whether the trade counts as a winner. Break-even trades count as won.
func (t Trade) IsWon() bool {
	return t.PnlNet >= 0
}

// OpenPosition is the entry side of a round trip that has not been closed yet.
type OpenPosition struct {
	Symbol       string
	PositionType PositionType
	Quantity     float64
	EntryTime    time.Time
	EntryPrice   float64
	EntryFee     float64
}
