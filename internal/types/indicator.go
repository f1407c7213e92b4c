package types

type IndicatorType string

const (
	IndicatorTypeRSI       IndicatorType = "rsi"
	IndicatorTypeMACD      IndicatorType = "macd"
	IndicatorTypeEMA       IndicatorType = "ema"
	IndicatorTypeCrossOver IndicatorType = "crossover"
)

// IndicatorSnapshot holds the derived indicator values of one bar.
type IndicatorSnapshot struct {
	// MACDLine is fast EMA minus slow EMA.
	MACDLine float64 `yaml:"macd" json:"macd"`
	// MACDSignalLine is the EMA of MACDLine.
	MACDSignalLine float64 `yaml:"macd_signal" json:"macd_signal"`
	// CrossoverSign is +1 when MACDLine crossed above the signal line on this bar,
	// -1 when it crossed below and 0 otherwise.
	CrossoverSign int `yaml:"crossover" json:"crossover"`
	// RSI is the relative strength index in [0, 100].
	RSI float64 `yaml:"rsi" json:"rsi"`
}
