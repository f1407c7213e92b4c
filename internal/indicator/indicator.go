package indicator

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// Indicator is a streaming technical indicator. Values are pushed one bar at a
// time with Update, oldest first.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters and resets its state.
	Config(params ...any) error
	// Update consumes the next input value and reports whether the indicator has a value.
	Update(value float64) bool
	// Ready reports whether enough values have been consumed to produce a value.
	Ready() bool
	// WarmupPeriod is the number of inputs consumed before the first value is available.
	WarmupPeriod() int
	// Reset clears all consumed values.
	Reset()
}
