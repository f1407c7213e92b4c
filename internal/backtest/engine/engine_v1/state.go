package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"go.uber.org/zap"
)

// BacktestState is the trade ledger of one run, kept in an in-memory DuckDB
// database so the statistics can be computed in SQL.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewBacktestState(logger *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to open state database", err)
	}

	return &BacktestState{
		logger: logger,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the trades table.
func (b *BacktestState) Initialize() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			symbol TEXT,
			position_type TEXT,
			quantity DOUBLE,
			entry_time TIMESTAMP,
			entry_price DOUBLE,
			entry_fee DOUBLE,
			exit_time TIMESTAMP,
			exit_price DOUBLE,
			exit_fee DOUBLE,
			pnl_gross DOUBLE,
			pnl_net DOUBLE,
			exit_reason TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create trades table: %w", err)
	}

	return nil
}

// RecordTrade stores a closed round trip.
func (b *BacktestState) RecordTrade(trade types.Trade) error {
	_, err := b.sq.
		Insert("trades").
		Columns(
			"id", "symbol", "position_type", "quantity",
			"entry_time", "entry_price", "entry_fee",
			"exit_time", "exit_price", "exit_fee",
			"pnl_gross", "pnl_net", "exit_reason",
		).
		Values(
			trade.ID, trade.Symbol, string(trade.PositionType), trade.Quantity,
			trade.EntryTime, trade.EntryPrice, trade.EntryFee,
			trade.ExitTime, trade.ExitPrice, trade.ExitFee,
			trade.PnlGross, trade.PnlNet, trade.ExitReason,
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert trade", err)
	}

	b.logger.Debug("trade recorded",
		zap.String("id", trade.ID),
		zap.String("exit_reason", trade.ExitReason),
		zap.Float64("pnl_net", trade.PnlNet),
		zap.Bool("won", trade.IsWon()),
	)

	return nil
}

// GetTrades returns the closed trades in exit order.
func (b *BacktestState) GetTrades() ([]types.Trade, error) {
	rows, err := b.sq.
		Select(
			"id", "symbol", "position_type", "quantity",
			"entry_time", "entry_price", "entry_fee",
			"exit_time", "exit_price", "exit_fee",
			"pnl_gross", "pnl_net", "exit_reason",
		).
		From("trades").
		OrderBy("exit_time ASC", "id ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var (
			trade        types.Trade
			positionType string
		)

		err := rows.Scan(
			&trade.ID, &trade.Symbol, &positionType, &trade.Quantity,
			&trade.EntryTime, &trade.EntryPrice, &trade.EntryFee,
			&trade.ExitTime, &trade.ExitPrice, &trade.ExitFee,
			&trade.PnlGross, &trade.PnlNet, &trade.ExitReason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.PositionType = types.PositionType(positionType)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// Statistics aggregates the closed trades. openTrades is the number of
// positions still open; they count towards TotalTrades only.
func (b *BacktestState) Statistics(openTrades int) (types.TradeStatistics, error) {
	stats := types.TradeStatistics{
		OpenTrades: openTrades,
	}

	err := b.sq.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(pnl_net), 0)",
			"COALESCE(SUM(pnl_gross), 0)",
		).
		From("trades").
		RunWith(b.db).
		QueryRow().
		Scan(&stats.ClosedTrades, &stats.PnlNet, &stats.PnlGross)
	if err != nil {
		return types.TradeStatistics{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to aggregate trades", err)
	}

	stats.TotalTrades = stats.ClosedTrades + openTrades

	stats.Long, err = b.directionStatistics(types.PositionTypeLong)
	if err != nil {
		return types.TradeStatistics{}, err
	}

	stats.Short, err = b.directionStatistics(types.PositionTypeShort)
	if err != nil {
		return types.TradeStatistics{}, err
	}

	return stats, nil
}

// directionStatistics counts break-even trades as won.
func (b *BacktestState) directionStatistics(positionType types.PositionType) (types.DirectionStats, error) {
	var stats types.DirectionStats

	err := b.sq.
		Select(
			"COUNT(*)",
			"COUNT(*) FILTER (WHERE pnl_net >= 0)",
			"COUNT(*) FILTER (WHERE pnl_net < 0)",
			"COALESCE(SUM(pnl_net) FILTER (WHERE pnl_net >= 0), 0)",
			"COALESCE(SUM(pnl_net) FILTER (WHERE pnl_net < 0), 0)",
		).
		From("trades").
		Where(squirrel.Eq{"position_type": string(positionType)}).
		RunWith(b.db).
		QueryRow().
		Scan(&stats.Total, &stats.Won, &stats.Lost, &stats.WonAmount, &stats.LostAmount)
	if err != nil {
		return types.DirectionStats{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to aggregate %s trades", positionType)
	}

	return stats, nil
}

// Write exports the trades table to <folder>/trades.parquet and returns the path.
func (b *BacktestState) Write(folder string) (string, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteError, "failed to create result folder", err)
	}

	path := filepath.Join(folder, "trades.parquet")

	// squirrel does not build COPY
	_, err := b.db.Exec(`COPY (SELECT * FROM trades ORDER BY exit_time ASC) TO ` + datasource.QuoteLiteral(path) + ` (FORMAT PARQUET)`)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResultWriteError, "failed to write trades", err)
	}

	return path, nil
}

// Cleanup drops the trades table and creates it again.
func (b *BacktestState) Cleanup() error {
	_, err := b.db.Exec(`DROP TABLE IF EXISTS trades`)
	if err != nil {
		return fmt.Errorf("failed to drop trades table: %w", err)
	}

	return b.Initialize()
}

// Close releases the database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}
