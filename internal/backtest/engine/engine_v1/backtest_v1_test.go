package engine

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine"
	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-macdrsi/internal/indicator"
	"github.com/rxtech-lab/argo-macdrsi/internal/logger"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/mocks"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

type BacktestEngineV1TestSuite struct {
	suite.Suite
	bars []types.MarketData
}

func TestBacktestEngineV1Suite(t *testing.T) {
	suite.Run(t, new(BacktestEngineV1TestSuite))
}

func (suite *BacktestEngineV1TestSuite) SetupSuite() {
	config := mocks.DefaultConfig()
	config.Count = 300
	config.Cycle = 30
	config.CycleAmplitude = 8

	suite.bars = mocks.NewDataGenerator(7).Generate(config)
}

func (suite *BacktestEngineV1TestSuite) newEngine(config string) *BacktestEngineV1 {
	b := NewBacktestEngineV1WithLogger(logger.NewNopLogger())
	suite.Require().NoError(b.Initialize(config))
	suite.T().Cleanup(func() { _ = b.Close() })

	return b
}

// expectedEntries replays the decision rule over bars with an always-filled
// one unit position.
func (suite *BacktestEngineV1TestSuite) expectedEntries(bars []types.MarketData, s *strategy.MACDRSIStrategy) int {
	feed, err := indicator.NewFeed(s.FeedConfig())
	suite.Require().NoError(err)

	entries := 0
	position := types.PositionState{Size: 0}

	source := datasource.NewInMemoryDataSource(bars)
	for item, err := range feed.Stream(source.ReadAll(optional.None[time.Time](), optional.None[time.Time]())) {
		suite.Require().NoError(err)

		switch strategy.Decide(item.Snapshot, position, item.IsLastBar) {
		case types.DecisionEnterLong:
			entries++
			position.Size = 1
		case types.DecisionExitLong, types.DecisionLiquidate:
			position.Size = 0
		}
	}

	return entries
}

func (suite *BacktestEngineV1TestSuite) TestRunInMemory() {
	b := suite.newEngine("initial_capital: 500\nbroker: zero_commission\n")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	s := strategy.NewMACDRSIStrategy()
	report, err := b.Run(context.Background(), s, engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	stats := report.Statistics
	suite.Equal(suite.expectedEntries(suite.bars, s), stats.ClosedTrades)
	suite.Equal(0, stats.OpenTrades, "the last bar liquidates")
	suite.Equal(stats.ClosedTrades, stats.TotalTrades)
	suite.Equal(stats.ClosedTrades, stats.Long.Total)
	suite.Equal(stats.Long.Total, stats.Long.Won+stats.Long.Lost)
	suite.Equal(0, stats.Short.Total)
	suite.LessOrEqual(stats.Long.LostAmount, 0.0)
	suite.InDelta(stats.PnlNet, stats.Long.WonAmount+stats.Long.LostAmount, 1e-6)
	suite.InDelta(stats.PnlGross, stats.PnlNet, 1e-9, "zero commission")
	suite.InDelta(500+stats.PnlNet, report.EndValue, 0.01)

	suite.Equal("macd_rsi", report.Strategy)
	suite.Equal("TEST", report.Symbol)
	suite.Equal(8, report.Parameters[strategy.ParamMACDFast])
	suite.NotEmpty(report.ID)
	suite.Empty(report.TradesFilePath)
}

func (suite *BacktestEngineV1TestSuite) TestRunIsRepeatable() {
	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	first, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	second, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	suite.Equal(first.Statistics, second.Statistics)
	suite.NotEqual(first.ID, second.ID)
}

func (suite *BacktestEngineV1TestSuite) TestCallbacks() {
	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	var (
		startCalls    int
		startTotal    int
		startParams   types.ParameterSet
		processed     []int
		decisions     []types.Decision
		endStats      types.TradeStatistics
		endFolderPath = "unset"
	)

	onStart := engine.OnRunStartCallback(func(runID string, strategyName string, params types.ParameterSet, total int) error {
		startCalls++
		startTotal = total
		startParams = params

		return nil
	})
	onProcess := engine.OnProcessDataCallback(func(current int, total int) error {
		processed = append(processed, current)

		return nil
	})
	onDecision := engine.OnDecisionCallback(func(bar types.MarketData, decision types.Decision) {
		decisions = append(decisions, decision)
	})
	onEnd := engine.OnRunEndCallback(func(runID string, stats types.TradeStatistics, resultFolderPath string) {
		endStats = stats
		endFolderPath = resultFolderPath
	})

	report, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{
		OnRunStart:    &onStart,
		OnRunEnd:      &onEnd,
		OnProcessData: &onProcess,
		OnDecision:    &onDecision,
	})
	suite.Require().NoError(err)

	suite.Equal(1, startCalls)
	suite.Equal(len(suite.bars), startTotal)
	suite.Equal(strategy.NewMACDRSIStrategy().Parameters(), startParams)

	feed, err := indicator.NewFeed(strategy.DefaultConfig().FeedConfig())
	suite.Require().NoError(err)
	suite.Len(processed, len(suite.bars)-feed.WarmupPeriod()+1)
	suite.Equal(len(suite.bars), processed[len(processed)-1])

	suite.Require().NotEmpty(decisions)
	suite.Equal(types.DecisionLiquidate, decisions[len(decisions)-1])
	suite.NotContains(decisions, types.DecisionHold)

	suite.Equal(report.Statistics, endStats)
	suite.Empty(endFolderPath)
}

func (suite *BacktestEngineV1TestSuite) TestCallbackErrorAbortsRun() {
	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	onProcess := engine.OnProcessDataCallback(func(current int, total int) error {
		return errors.New(errors.ErrCodeUnknown, "stop")
	})

	_, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{
		OnProcessData: &onProcess,
	})
	suite.True(errors.HasCode(err, errors.ErrCodeCallbackFailed))
}

func (suite *BacktestEngineV1TestSuite) TestCancelledContext() {
	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestCancelled))
}

func (suite *BacktestEngineV1TestSuite) TestNotEnoughData() {
	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars[:10])))

	called := false
	onProcess := engine.OnProcessDataCallback(func(current int, total int) error {
		called = true

		return nil
	})

	report, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{
		OnProcessData: &onProcess,
	})
	suite.Require().NoError(err)
	suite.False(called)
	suite.Equal(0, report.Statistics.TotalTrades)
	suite.InDelta(500.0, report.EndValue, 1e-9)
}

func (suite *BacktestEngineV1TestSuite) TestEndValueLogsCash() {
	log, logs := logger.NewObservedLogger(zapcore.InfoLevel)
	b := NewBacktestEngineV1WithLogger(log)
	suite.Require().NoError(b.Initialize(""))
	suite.T().Cleanup(func() { _ = b.Close() })
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	report, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
	suite.Require().NoError(err)

	ended := logs.FilterMessage("End Value").All()
	suite.Require().Len(ended, 1)
	// the last bar liquidates, so everything is back in cash
	suite.InDelta(report.EndValue, ended[0].ContextMap()["end_cash"], 0.01)
}

func (suite *BacktestEngineV1TestSuite) TestTimeWindow() {
	start := suite.bars[50].Time
	end := suite.bars[199].Time

	b := suite.newEngine("start_time: " + start.Format(time.RFC3339) + "\nend_time: " + end.Format(time.RFC3339) + "\n")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))

	var total int

	onStart := engine.OnRunStartCallback(func(runID string, strategyName string, params types.ParameterSet, totalDataPoints int) error {
		total = totalDataPoints

		return nil
	})

	s := strategy.NewMACDRSIStrategy()
	report, err := b.Run(context.Background(), s, engine.LifecycleCallbacks{OnRunStart: &onStart})
	suite.Require().NoError(err)
	suite.Equal(150, total)
	suite.Equal(suite.expectedEntries(suite.bars[50:200], s), report.Statistics.ClosedTrades)
}

func (suite *BacktestEngineV1TestSuite) TestWritesResults() {
	resultsFolder := suite.T().TempDir()

	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))
	suite.Require().NoError(b.SetResultsFolder(resultsFolder))

	var endFolderPath string

	onEnd := engine.OnRunEndCallback(func(runID string, stats types.TradeStatistics, resultFolderPath string) {
		endFolderPath = resultFolderPath
	})

	report, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{OnRunEnd: &onEnd})
	suite.Require().NoError(err)

	expectedFolder := filepath.Join(resultsFolder, "macd_rsi", "macd_fast_8-macd_slow_21-macd_signal_6-rsi_13")
	suite.Equal(expectedFolder, endFolderPath)
	suite.Equal(filepath.Join(expectedFolder, "trades.parquet"), report.TradesFilePath)
	suite.FileExists(report.TradesFilePath)
	suite.FileExists(filepath.Join(expectedFolder, "stats.yaml"))
}

func (suite *BacktestEngineV1TestSuite) TestRunFromCSVFile() {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "TEST_1d.csv")
	suite.Require().NoError(writeBarsCSV(path, suite.bars))

	source, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer source.Close()

	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(source))
	suite.Require().NoError(b.SetDataPath(path))

	s := strategy.NewMACDRSIStrategy()
	report, err := b.Run(context.Background(), s, engine.LifecycleCallbacks{})
	suite.Require().NoError(err)
	suite.Equal(path, report.DataPath)
	suite.Equal(suite.expectedEntries(suite.bars, s), report.Statistics.ClosedTrades)
}

func (suite *BacktestEngineV1TestSuite) TestMissingDataFile() {
	source, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer source.Close()

	b := suite.newEngine("")
	suite.Require().NoError(b.SetDataSource(source))
	suite.Require().NoError(b.SetDataPath(filepath.Join(suite.T().TempDir(), "missing.parquet")))

	_, err = b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *BacktestEngineV1TestSuite) TestDataSourceErrors() {
	suite.Run("count fails", func() {
		ctrl := gomock.NewController(suite.T())
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New(errors.ErrCodeQueryFailed, "boom"))

		b := suite.newEngine("")
		suite.Require().NoError(b.SetDataSource(source))

		_, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
		suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
	})

	suite.Run("read fails mid stream", func() {
		ctrl := gomock.NewController(suite.T())
		source := mocks.NewMockDataSource(ctrl)
		source.EXPECT().Count(gomock.Any(), gomock.Any()).Return(len(suite.bars), nil)
		source.EXPECT().ReadAll(gomock.Any(), gomock.Any()).Return(func(yield func(types.MarketData, error) bool) {
			for _, bar := range suite.bars[:100] {
				if !yield(bar, nil) {
					return
				}
			}

			yield(types.MarketData{}, errors.New(errors.ErrCodeQueryFailed, "connection lost"))
		})

		b := suite.newEngine("")
		suite.Require().NoError(b.SetDataSource(source))

		_, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
		suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
	})
}

func (suite *BacktestEngineV1TestSuite) TestPreRunCheck() {
	suite.Run("no datasource", func() {
		b := suite.newEngine("")
		_, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
		suite.True(errors.HasCode(err, errors.ErrCodeBacktestNoDatasource))
	})

	suite.Run("no strategy", func() {
		b := suite.newEngine("")
		suite.Require().NoError(b.SetDataSource(datasource.NewInMemoryDataSource(suite.bars)))
		_, err := b.Run(context.Background(), nil, engine.LifecycleCallbacks{})
		suite.True(errors.HasCode(err, errors.ErrCodeBacktestNoStrategies))
	})

	suite.Run("not initialized", func() {
		b := NewBacktestEngineV1WithLogger(logger.NewNopLogger())
		_, err := b.Run(context.Background(), strategy.NewMACDRSIStrategy(), engine.LifecycleCallbacks{})
		suite.True(errors.HasCode(err, errors.ErrCodeBacktestStateNil))
	})
}

func (suite *BacktestEngineV1TestSuite) TestInitializeRejectsInvalidConfig() {
	b := NewBacktestEngineV1WithLogger(logger.NewNopLogger())
	err := b.Initialize("initial_capital: -1\n")
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))
}

func (suite *BacktestEngineV1TestSuite) TestGetConfigSchema() {
	schema, err := NewBacktestEngineV1().GetConfigSchema()
	suite.Require().NoError(err)
	suite.Contains(schema, "initial_capital")
}

func writeBarsCSV(path string, bars []types.MarketData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"time", "symbol", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	for _, bar := range bars {
		row := []string{
			bar.Time.Format("2006-01-02 15:04:05"),
			bar.Symbol,
			format(bar.Open),
			format(bar.High),
			format(bar.Low),
			format(bar.Close),
			format(bar.Volume),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
