package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DirectionStats aggregates the closed trades of one side (long or short).
type DirectionStats struct {
	// Count of closed trades on this side.
	Total int `yaml:"total" json:"total"`
	// Count of trades with net pnl >= 0.
	Won int `yaml:"won" json:"won"`
	// Count of trades with net pnl < 0.
	Lost int `yaml:"lost" json:"lost"`
	// Sum of net pnl of the won trades.
	WonAmount float64 `yaml:"won_amount" json:"won_amount"`
	// Sum of net pnl of the lost trades. Zero or negative.
	LostAmount float64 `yaml:"lost_amount" json:"lost_amount"`
}

// TradeStatistics is the trade analysis of one completed backtest run.
type TradeStatistics struct {
	// Count of all trades, open and closed.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Count of trades still open at the end of the run.
	OpenTrades int `yaml:"open_trades" json:"open_trades"`
	// Count of closed trades.
	ClosedTrades int `yaml:"closed_trades" json:"closed_trades"`
	// Net pnl of the closed trades, after fees.
	PnlNet float64 `yaml:"pnl_net" json:"pnl_net"`
	// Gross pnl of the closed trades, before fees.
	PnlGross float64 `yaml:"pnl_gross" json:"pnl_gross"`
	Long     DirectionStats `yaml:"long" json:"long"`
	Short    DirectionStats `yaml:"short" json:"short"`
}

// TradeStats is the single run report written next to the trades file.
type TradeStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the instrument.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Strategy is the name of the strategy.
	Strategy string `yaml:"strategy" json:"strategy"`
	// Parameters used for the run.
	Parameters map[string]int `yaml:"parameters" json:"parameters"`
	// Statistics is the trade analysis.
	Statistics TradeStatistics `yaml:"statistics" json:"statistics"`
	// StartValue is the initial cash.
	StartValue float64 `yaml:"start_value" json:"start_value"`
	// EndValue is cash plus the marked value of any open position after the last bar.
	EndValue float64 `yaml:"end_value" json:"end_value"`
	// TotalFees paid on all fills.
	TotalFees float64 `yaml:"total_fees" json:"total_fees"`
	// TradesFilePath is the path to the trades parquet file.
	TradesFilePath string `yaml:"trades_file_path" json:"trades_file_path"`
	// DataPath is the market data file used for this backtest.
	DataPath string `yaml:"data_path" json:"data_path"`
}

func WriteTradeStats(path string, stats TradeStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal trade stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trade stats to file: %w", err)
	}

	return nil
}
