package indicator

import (
	"iter"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

const defaultHistorySize = 64

// FeedConfig holds the indicator periods of a Feed.
type FeedConfig struct {
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	// HistorySize bounds how many emitted items Lookback can reach. Zero means 64.
	HistorySize int
}

// FeedItem is one bar together with its indicator snapshot.
type FeedItem struct {
	Bar      types.MarketData
	Snapshot types.IndicatorSnapshot
	// Index is the position of the bar in the input, counting warm-up bars.
	Index int
	// IsLastBar is true when no bar follows this one.
	IsLastBar bool
}

// Feed computes MACD, its signal crossover and RSI over a bar stream and emits
// an item per bar once every indicator has a value. Warm-up bars are consumed
// silently.
type Feed struct {
	macd  *MACD
	rsi   *RSI
	cross *CrossOver

	processed   int
	history     []FeedItem
	historySize int
}

// NewFeed creates a Feed with the given periods.
func NewFeed(config FeedConfig) (*Feed, error) {
	macd := NewMACD()
	if err := macd.Config(config.MACDFast, config.MACDSlow, config.MACDSignal); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to configure MACD", err)
	}

	rsi := NewRSI()
	if err := rsi.Config(config.RSIPeriod); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to configure RSI", err)
	}

	historySize := config.HistorySize
	if historySize <= 0 {
		historySize = defaultHistorySize
	}

	return &Feed{
		macd:        macd,
		rsi:         rsi,
		cross:       NewCrossOver(),
		processed:   0,
		history:     make([]FeedItem, 0, historySize),
		historySize: historySize,
	}, nil
}

// WarmupPeriod is the number of bars consumed before the first item is emitted.
func (f *Feed) WarmupPeriod() int {
	// the crossover needs one MACD difference beyond the MACD warm-up
	return max(f.macd.WarmupPeriod()+1, f.rsi.WarmupPeriod())
}

// push feeds one bar through every indicator and reports whether the bar has a complete snapshot.
func (f *Feed) push(bar types.MarketData) (FeedItem, bool) {
	index := f.processed
	f.processed++

	f.rsi.Update(bar.Close)

	crossReady := false
	if f.macd.Update(bar.Close) {
		crossReady = f.cross.Update(f.macd.Histogram())
	}

	if !crossReady || !f.rsi.Ready() {
		return FeedItem{}, false
	}

	return FeedItem{
		Bar: bar,
		Snapshot: types.IndicatorSnapshot{
			MACDLine:       f.macd.Line(),
			MACDSignalLine: f.macd.Signal(),
			CrossoverSign:  f.cross.Sign(),
			RSI:            f.rsi.Value(),
		},
		Index:     index,
		IsLastBar: false,
	}, true
}

func (f *Feed) remember(item FeedItem) {
	if len(f.history) == f.historySize {
		copy(f.history, f.history[1:])
		f.history = f.history[:len(f.history)-1]
	}

	f.history = append(f.history, item)
}

// Stream wraps a bar sequence. Each item is held back until the next bar
// arrives so that the final item can be flagged with IsLastBar. An error from
// the source is passed through and ends the stream.
func (f *Feed) Stream(bars iter.Seq2[types.MarketData, error]) iter.Seq2[FeedItem, error] {
	return func(yield func(FeedItem, error) bool) {
		var pending optional.Option[FeedItem]

		for bar, err := range bars {
			if err != nil {
				yield(FeedItem{}, err)

				return
			}

			if pending.IsSome() {
				item := pending.Unwrap()
				f.remember(item)

				if !yield(item, nil) {
					return
				}

				pending = optional.None[FeedItem]()
			}

			if item, ok := f.push(bar); ok {
				pending = optional.Some(item)
			}
		}

		if pending.IsSome() {
			item := pending.Unwrap()
			item.IsLastBar = true
			f.remember(item)
			yield(item, nil)
		}
	}
}

// Items is Stream over an in-memory slice of bars.
func (f *Feed) Items(bars []types.MarketData) iter.Seq2[FeedItem, error] {
	return f.Stream(func(yield func(types.MarketData, error) bool) {
		for _, bar := range bars {
			if !yield(bar, nil) {
				return
			}
		}
	})
}

// Lookback returns an already emitted item by relative offset: 0 is the latest
// item, -1 the one before it and so on.
func (f *Feed) Lookback(offset int) optional.Option[FeedItem] {
	if offset > 0 {
		return optional.None[FeedItem]()
	}

	idx := len(f.history) - 1 + offset
	if idx < 0 || idx >= len(f.history) {
		return optional.None[FeedItem]()
	}

	return optional.Some(f.history[idx])
}

// Processed returns the number of bars consumed so far, including warm-up bars.
func (f *Feed) Processed() int {
	return f.processed
}

// CheckSufficient returns an InsufficientDataError when count bars cannot
// produce a single item.
func (f *Feed) CheckSufficient(count int, symbol string) error {
	if count < f.WarmupPeriod() {
		return errors.NewInsufficientDataErrorf(f.WarmupPeriod(), count, symbol,
			"insufficient data for MACD/RSI on %s: required %d bars, got %d", symbol, f.WarmupPeriod(), count)
	}

	return nil
}
