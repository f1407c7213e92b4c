package commission_fee

import "github.com/shopspring/decimal"

var (
	ibPerShare = decimal.NewFromFloat(0.005)
	ibMinimum  = decimal.NewFromFloat(1.0)
	// the per order fee never exceeds 1% of the trade value
	ibMaxShare = decimal.NewFromFloat(0.01)
)

// InteractiveBrokerCommissionFee is the fixed pricing of Interactive Brokers:
// 0.005 per share, at least 1.0 and at most 1% of the trade value.
type InteractiveBrokerCommissionFee struct{}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{}
}

func (c *InteractiveBrokerCommissionFee) Calculate(quantity float64, price float64) float64 {
	if quantity <= 0 {
		return 0
	}

	qty := decimal.NewFromFloat(quantity)
	fee := decimal.Max(qty.Mul(ibPerShare), ibMinimum)

	if price > 0 {
		fee = decimal.Min(fee, qty.Mul(decimal.NewFromFloat(price)).Mul(ibMaxShare))
	}

	return fee.InexactFloat64()
}
