package calc

import (
	"github.com/shopspring/decimal"
)

func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// DisplayTotal is LineTotal rounded half away from zero to cents.
func DisplayTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return LineTotal(unitPrice, qty).Round(2)
}

func ClampMin(n, min int) int {
	if n < min {
		return min
	}
	return n
}
