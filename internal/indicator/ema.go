package indicator

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

// EMA indicator implements Exponential Moving Average calculation. The first
// value is the simple average of the first period inputs.
type EMA struct {
	period int
	k      float64
	count  int
	sum    float64
	value  float64
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() *EMA {
	e := &EMA{}
	e.setPeriod(20)

	return e
}

// NewEMAWithPeriod creates an EMA over the given period.
func NewEMAWithPeriod(period int) (*EMA, error) {
	e := &EMA{}
	if err := e.Config(period); err != nil {
		return nil, err
	}

	return e, nil
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
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

	e.setPeriod(period)

	return nil
}

func (e *EMA) setPeriod(period int) {
	e.period = period
	e.k = 2.0 / float64(period+1)
	e.Reset()
}

// Update implements Indicator.
func (e *EMA) Update(value float64) bool {
	e.count++

	switch {
	case e.count < e.period:
		e.sum += value
	case e.count == e.period:
		e.sum += value
		e.value = e.sum / float64(e.period)
	default:
		e.value = (value-e.value)*e.k + e.value
	}

	return e.Ready()
}

// Ready implements Indicator.
func (e *EMA) Ready() bool {
	return e.count >= e.period
}

// Value returns the current EMA. It is zero until Ready.
func (e *EMA) Value() float64 {
	return e.value
}

// WarmupPeriod implements Indicator.
func (e *EMA) WarmupPeriod() int {
	return e.period
}

// Reset implements Indicator.
func (e *EMA) Reset() {
	e.count = 0
	e.sum = 0
	e.value = 0
}
