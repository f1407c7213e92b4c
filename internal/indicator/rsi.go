package indicator

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

const flatEpsilon = 1e-14

// RSI represents the Relative Strength Index indicator using Wilder's smoothing.
type RSI struct {
	period int

	count   int
	prev    float64
	avgGain float64
	avgLoss float64
	value   float64
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() *RSI {
	return &RSI{
		period: 14, // Default period
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	r.period = period
	r.Reset()

	return nil
}

// Update implements Indicator. The first value is available after period+1
// closes, i.e. after period price changes.
func (r *RSI) Update(value float64) bool {
	r.count++
	if r.count == 1 {
		r.prev = value

		return false
	}

	change := value - r.prev
	r.prev = value

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	changes := r.count - 1
	p := float64(r.period)

	switch {
	case changes < r.period:
		r.avgGain += gain
		r.avgLoss += loss

		return false
	case changes == r.period:
		r.avgGain = (r.avgGain + gain) / p
		r.avgLoss = (r.avgLoss + loss) / p
	default:
		r.avgGain = (r.avgGain*(p-1) + gain) / p
		r.avgLoss = (r.avgLoss*(p-1) + loss) / p
	}

	// flat prices give 0, as in TA-Lib
	if total := r.avgGain + r.avgLoss; total > flatEpsilon {
		r.value = 100 * r.avgGain / total
	} else {
		r.value = 0
	}

	return true
}

// Ready implements Indicator.
func (r *RSI) Ready() bool {
	return r.count > r.period
}

// Value returns the current RSI. It is zero until Ready.
func (r *RSI) Value() float64 {
	return r.value
}

// WarmupPeriod implements Indicator.
func (r *RSI) WarmupPeriod() int {
	return r.period + 1
}

// Reset implements Indicator.
func (r *RSI) Reset() {
	r.count = 0
	r.prev = 0
	r.avgGain = 0
	r.avgLoss = 0
	r.value = 0
}
