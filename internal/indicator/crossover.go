package indicator

import (
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
	"github.com/rxtech-lab/argo-macdrsi/pkg/errors"
)

// CrossOver detects when one line crosses another. It consumes the difference
// between the two lines (e.g. MACD - signal). A cross is measured against the
// last non-zero difference, so touching the line and moving away again is not
// a cross.
type CrossOver struct {
	count    int
	lastSign int
	sign     int
}

// NewCrossOver creates a new CrossOver indicator.
func NewCrossOver() *CrossOver {
	return &CrossOver{}
}

// Name returns the name of the indicator.
func (c *CrossOver) Name() types.IndicatorType {
	return types.IndicatorTypeCrossOver
}

// Config accepts no parameters.
func (c *CrossOver) Config(params ...any) error {
	if len(params) != 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "CrossOver takes no parameters, got %d", len(params))
	}

	c.Reset()

	return nil
}

// Update implements Indicator. The sign is +1 on an upward cross, -1 on a
// downward cross and 0 otherwise.
func (c *CrossOver) Update(diff float64) bool {
	c.count++

	current := signOf(diff)
	c.sign = 0

	if current != 0 {
		if c.lastSign != 0 && current != c.lastSign {
			c.sign = current
		}

		c.lastSign = current
	}

	return c.Ready()
}

// Ready implements Indicator.
func (c *CrossOver) Ready() bool {
	return c.count >= 2
}

// Sign returns the crossover sign of the latest update.
func (c *CrossOver) Sign() int {
	return c.sign
}

// WarmupPeriod implements Indicator.
func (c *CrossOver) WarmupPeriod() int {
	return 2
}

// Reset implements Indicator.
func (c *CrossOver) Reset() {
	c.count = 0
	c.lastSign = 0
	c.sign = 0
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
