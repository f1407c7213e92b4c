package commission_fee

import "github.com/shopspring/decimal"

// PercentageCommissionFee charges rate times the trade value.
type PercentageCommissionFee struct {
	rate decimal.Decimal
}

func NewPercentageCommissionFee(rate float64) CommissionFee {
	return &PercentageCommissionFee{
		rate: decimal.NewFromFloat(rate),
	}
}

func (c *PercentageCommissionFee) Calculate(quantity float64, price float64) float64 {
	if quantity <= 0 || price <= 0 || c.rate.IsNegative() {
		return 0
	}

	notional := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price))

	return notional.Mul(c.rate).InexactFloat64()
}
