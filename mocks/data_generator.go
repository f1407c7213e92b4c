package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// DataGenerator produces synthetic bars for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a DataGenerator. A fixed seed gives reproducible bars.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig controls the shape of a generated series.
type GeneratorConfig struct {
	Symbol       string
	StartTime    time.Time
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility is the per-bar standard deviation of the close-to-close return.
	Volatility float64
	// Trend is the total drift spread over the series.
	Trend float64
	// Cycle adds a sine wave of the given period (in bars) on top of the walk,
	// which makes MACD crossovers frequent. Zero disables it.
	Cycle          int
	CycleAmplitude float64
	VolumeBase     float64
}

// DefaultConfig returns a daily series of 500 bars starting at 100.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          500,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Trend:          0.0,
		Cycle:          0,
		CycleAmplitude: 0,
		VolumeBase:     10000,
	}
}

// Generate builds a geometric Brownian motion series, optionally with a cycle.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	walk := config.InitialPrice
	prevClose := config.InitialPrice
	currentTime := config.StartTime

	for i := range config.Count {
		// Box-Muller
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		walk *= 1 + config.Volatility*z + drift
		if walk <= 0 {
			walk = prevClose * 0.99
		}

		closePrice := walk
		if config.Cycle > 0 {
			closePrice += config.CycleAmplitude * math.Sin(2*math.Pi*float64(i)/float64(config.Cycle))
		}

		if closePrice <= 0 {
			closePrice = prevClose * 0.99
		}

		data[i] = g.bar(config, currentTime, prevClose, closePrice)

		prevClose = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// FromCloses builds bars whose closes are exactly the given values. Open is
// the previous close and volume is constant.
func FromCloses(symbol string, closes []float64) []types.MarketData {
	data := make([]types.MarketData, len(closes))
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	for i, closePrice := range closes {
		open := closePrice
		if i > 0 {
			open = closes[i-1]
		}

		data[i] = types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, closePrice),
			Low:    math.Min(open, closePrice),
			Close:  closePrice,
			Volume: 1000,
		}
	}

	return data
}

func (g *DataGenerator) bar(config GeneratorConfig, at time.Time, open, closePrice float64) types.MarketData {
	spread := config.Volatility * open * 0.5

	high := math.Max(open, closePrice) + math.Abs(g.rng.Float64()*spread)
	low := math.Min(open, closePrice) - math.Abs(g.rng.Float64()*spread)

	if low <= 0 {
		low = math.Min(open, closePrice) * 0.99
	}

	volume := config.VolumeBase * (0.7 + g.rng.Float64()*0.6)

	return types.MarketData{
		Id:     "",
		Symbol: config.Symbol,
		Time:   at,
		Open:   roundToDecimals(open, 4),
		High:   roundToDecimals(high, 4),
		Low:    roundToDecimals(low, 4),
		Close:  roundToDecimals(closePrice, 4),
		Volume: roundToDecimals(volume, 2),
	}
}

func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
