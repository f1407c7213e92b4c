package commission_fee

type CommissionFee interface {
	// Calculate returns the fee in account currency for filling quantity units at price
	Calculate(quantity float64, price float64) float64
}

type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerZero              Broker = "zero_commission"
	// BrokerPercentage charges a fixed share of the traded notional.
	BrokerPercentage Broker = "percentage"
)

var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerZero,
	BrokerPercentage,
}

// GetCommissionFeeHandler returns the fee model of broker. rate is only read
// by the percentage broker (0.001 is 0.1%).
func GetCommissionFeeHandler(broker Broker, rate float64) CommissionFee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerPercentage:
		return NewPercentageCommissionFee(rate)
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
