package types

// Decision is what the strategy wants the execution adapter to do on the current bar.
type Decision string

const (
	// DecisionEnterLong opens a one unit long position.
	DecisionEnterLong Decision = "ENTER_LONG"
	// DecisionExitLong sells the open long position.
	DecisionExitLong Decision = "EXIT_LONG"
	// DecisionLiquidate closes whatever is open because the data ends on this bar.
	DecisionLiquidate Decision = "LIQUIDATE"
	// DecisionHold does nothing.
	DecisionHold Decision = "HOLD"
)

// PositionState is the position size as reported by the execution adapter.
// The strategy is long only with a single unit stake, so Size is 0 or 1.
type PositionState struct {
	Size int `yaml:"size" json:"size"`
}

// IsFlat reports whether there is no open position.
func (p PositionState) IsFlat() bool {
	return p.Size == 0
}
