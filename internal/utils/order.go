package utils

import (
	"math"

	"github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/shopspring/decimal"
)

// CalculateMaxQuantity returns the largest quantity whose cost plus commission fits in balance.
func CalculateMaxQuantity(balance float64, price float64, commissionFee commission_fee.CommissionFee) float64 {
	if price <= 0 || balance <= 0 {
		return 0
	}

	maxQty := balance / price

	// fees shrink the quantity; this converges in a few steps
	for range 10 {
		totalCost := maxQty*price + commissionFee.Calculate(maxQty, price)
		if totalCost <= balance {
			break
		}

		maxQty *= balance / totalCost
	}

	return maxQty
}

// OrderCost returns the cash needed to buy quantity at price and the fee part of it.
func OrderCost(quantity float64, price float64, commissionFee commission_fee.CommissionFee) (decimal.Decimal, decimal.Decimal) {
	fee := decimal.NewFromFloat(commissionFee.Calculate(quantity, price))
	notional := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price))

	return notional.Add(fee), fee
}

// RoundToDecimalPrecision rounds value down to decimalPrecision places.
func RoundToDecimalPrecision(value float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(value*multiplier) / multiplier
}
