package indicator

import (
	stderrors "errors"
	"testing"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/mocks"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FeedTestSuite struct {
	suite.Suite
	bars []types.MarketData
}

func TestFeedSuite(t *testing.T) {
	suite.Run(t, new(FeedTestSuite))
}

func (suite *FeedTestSuite) SetupTest() {
	config := mocks.DefaultConfig()
	config.Count = 200
	suite.bars = mocks.NewDataGenerator(42).Generate(config)
}

func (suite *FeedTestSuite) newFeed() *Feed {
	feed, err := NewFeed(FeedConfig{MACDFast: 8, MACDSlow: 21, MACDSignal: 6, RSIPeriod: 13})
	suite.Require().NoError(err)

	return feed
}

func (suite *FeedTestSuite) collect(feed *Feed, bars []types.MarketData) []FeedItem {
	var items []FeedItem

	for item, err := range feed.Items(bars) {
		suite.Require().NoError(err)
		items = append(items, item)
	}

	return items
}

func (suite *FeedTestSuite) TestWarmupPeriod() {
	feed := suite.newFeed()
	// MACD needs 21 + 6 - 1 bars, the crossover one more, RSI 14
	suite.Equal(27, feed.WarmupPeriod())
}

func (suite *FeedTestSuite) TestEmitsAfterWarmup() {
	feed := suite.newFeed()
	items := suite.collect(feed, suite.bars)

	suite.Len(items, len(suite.bars)-feed.WarmupPeriod()+1)
	suite.Equal(feed.WarmupPeriod()-1, items[0].Index)
	suite.Equal(suite.bars[items[0].Index], items[0].Bar)
	suite.Equal(len(suite.bars), feed.Processed())

	for i, item := range items {
		suite.Equal(i == len(items)-1, item.IsLastBar, "item %d", i)
		suite.GreaterOrEqual(item.Snapshot.RSI, 0.0)
		suite.LessOrEqual(item.Snapshot.RSI, 100.0)
		suite.Contains([]int{-1, 0, 1}, item.Snapshot.CrossoverSign)
	}

	suite.Equal(suite.bars[len(suite.bars)-1], items[len(items)-1].Bar)
}

func (suite *FeedTestSuite) TestCrossoverMatchesSignalLine() {
	feed := suite.newFeed()
	items := suite.collect(feed, suite.bars)

	for i := 1; i < len(items); i++ {
		prev := items[i-1].Snapshot
		cur := items[i].Snapshot

		prevDiff := prev.MACDLine - prev.MACDSignalLine
		curDiff := cur.MACDLine - cur.MACDSignalLine

		if prevDiff < 0 && curDiff > 0 {
			suite.Equal(1, cur.CrossoverSign, "item %d", i)
		}

		if prevDiff > 0 && curDiff < 0 {
			suite.Equal(-1, cur.CrossoverSign, "item %d", i)
		}
	}
}

func (suite *FeedTestSuite) TestNotEnoughBars() {
	feed := suite.newFeed()
	items := suite.collect(feed, suite.bars[:feed.WarmupPeriod()-1])
	suite.Empty(items)

	err := feed.CheckSufficient(10, "TEST")
	suite.True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(stderrors.As(err, &insufficient))
	suite.Equal(17, insufficient.Missing())
	suite.Equal("TEST", insufficient.Symbol)
	suite.NoError(feed.CheckSufficient(27, "TEST"))
}

func (suite *FeedTestSuite) TestExactlyWarmupBarsGiveOneLastItem() {
	feed := suite.newFeed()
	items := suite.collect(feed, suite.bars[:feed.WarmupPeriod()])

	suite.Require().Len(items, 1)
	suite.True(items[0].IsLastBar)
}

func (suite *FeedTestSuite) TestSourceErrorStopsStream() {
	feed := suite.newFeed()
	boom := stderrors.New("read failed")

	source := func(yield func(types.MarketData, error) bool) {
		for _, bar := range suite.bars[:40] {
			if !yield(bar, nil) {
				return
			}
		}

		yield(types.MarketData{}, boom)
	}

	count := 0

	var lastErr error

	for item, err := range feed.Stream(source) {
		if err != nil {
			lastErr = err

			break
		}

		suite.False(item.IsLastBar)
		count++
	}

	suite.ErrorIs(lastErr, boom)
	// the item of bar 40 is still pending when the error arrives
	suite.Equal(40-feed.WarmupPeriod(), count)
}

func (suite *FeedTestSuite) TestEarlyBreak() {
	feed := suite.newFeed()
	count := 0

	for range feed.Items(suite.bars) {
		count++
		if count == 3 {
			break
		}
	}

	suite.Equal(3, count)
}

func (suite *FeedTestSuite) TestLookback() {
	feed, err := NewFeed(FeedConfig{MACDFast: 8, MACDSlow: 21, MACDSignal: 6, RSIPeriod: 13, HistorySize: 3})
	suite.Require().NoError(err)

	items := suite.collect(feed, suite.bars)

	current := feed.Lookback(0)
	suite.True(current.IsSome())
	suite.Equal(items[len(items)-1], current.Unwrap())

	previous := feed.Lookback(-1)
	suite.True(previous.IsSome())
	suite.Equal(items[len(items)-2], previous.Unwrap())

	suite.True(feed.Lookback(-2).IsSome())
	suite.True(feed.Lookback(-3).IsNone())
	suite.True(feed.Lookback(1).IsNone())
}

func (suite *FeedTestSuite) TestInvalidConfig() {
	_, err := NewFeed(FeedConfig{MACDFast: 8, MACDSlow: 8, MACDSignal: 6, RSIPeriod: 13})
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))

	_, err = NewFeed(FeedConfig{MACDFast: 8, MACDSlow: 21, MACDSignal: 6, RSIPeriod: 0})
	suite.Error(err)
}
