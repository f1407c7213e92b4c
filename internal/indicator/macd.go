package indicator

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator. Like
// TA-Lib, both EMAs start on the same bar: the fast EMA is seeded with the
// average of the fast period closes that end where the slow EMA is seeded.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int

	count  int
	fast   *EMA
	slow   *EMA
	signal *EMA
	line   float64
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() *MACD {
	m := &MACD{}
	m.setPeriods(12, 26, 9)

	return m
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for fastPeriod parameter, expected int")
	}

	if fastPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod must be a positive integer, got %d", fastPeriod)
	}

	slowPeriod, ok := params[1].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for slowPeriod parameter, expected int")
	}

	if slowPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "slowPeriod must be a positive integer, got %d", slowPeriod)
	}

	if fastPeriod == slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod and slowPeriod must differ, both are %d", fastPeriod)
	}

	// swapped like TA-Lib
	if fastPeriod > slowPeriod {
		fastPeriod, slowPeriod = slowPeriod, fastPeriod
	}

	signalPeriod, ok := params[2].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for signalPeriod parameter, expected int")
	}

	if signalPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "signalPeriod must be a positive integer, got %d", signalPeriod)
	}

	m.setPeriods(fastPeriod, slowPeriod, signalPeriod)

	return nil
}

func (m *MACD) setPeriods(fast, slow, signal int) {
	m.fastPeriod = fast
	m.slowPeriod = slow
	m.signalPeriod = signal
	m.fast = &EMA{}
	m.fast.setPeriod(fast)
	m.slow = &EMA{}
	m.slow.setPeriod(slow)
	m.signal = &EMA{}
	m.signal.setPeriod(signal)
	m.count = 0
	m.line = 0
}

// Update implements Indicator. The MACD line exists once the slow EMA is ready;
// the indicator is ready once the signal line exists as well.
func (m *MACD) Update(value float64) bool {
	m.count++
	if m.count > m.slowPeriod-m.fastPeriod {
		m.fast.Update(value)
	}

	if !m.slow.Update(value) {
		return false
	}

	m.line = m.fast.Value() - m.slow.Value()

	return m.signal.Update(m.line)
}

// Ready implements Indicator.
func (m *MACD) Ready() bool {
	return m.signal.Ready()
}

// Line returns the MACD line (fast EMA - slow EMA).
func (m *MACD) Line() float64 {
	return m.line
}

// Signal returns the signal line (EMA of the MACD line).
func (m *MACD) Signal() float64 {
	return m.signal.Value()
}

// Histogram returns Line - Signal.
func (m *MACD) Histogram() float64 {
	return m.line - m.signal.Value()
}

// WarmupPeriod implements Indicator.
func (m *MACD) WarmupPeriod() int {
	return m.slowPeriod + m.signalPeriod - 1
}

// Reset implements Indicator.
func (m *MACD) Reset() {
	m.setPeriods(m.fastPeriod, m.slowPeriod, m.signalPeriod)
}
