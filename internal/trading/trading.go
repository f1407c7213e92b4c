package trading

// ExecutionAdapter carries out strategy decisions against a broker. The
// strategy calls at most one of the order methods per bar.
type ExecutionAdapter interface {
	// EnterLong opens a long position of one unit at the current bar.
	EnterLong() error
	// ExitLong closes the open long position. It is a no-op when flat.
	ExitLong() error
	// CloseAll liquidates every open position. It is a no-op when flat.
	CloseAll() error
	// CurrentPositionSize returns the size of the open position in units.
	CurrentPositionSize() int
}
