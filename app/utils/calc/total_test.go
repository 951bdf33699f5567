package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	unit := decimal.RequireFromString("29.99")

	assert.True(t, LineTotal(unit, 5).Equal(decimal.RequireFromString("149.95")))
	assert.True(t, LineTotal(unit, 0).IsZero())
}

func TestDisplayTotalRoundsToCents(t *testing.T) {
	unit := decimal.RequireFromString("0.005")

	assert.Equal(t, "0.01", DisplayTotal(unit, 1).StringFixed(2))
	assert.Equal(t, "74.97", DisplayTotal(decimal.RequireFromString("24.99"), 3).StringFixed(2))
}

func TestClampMin(t *testing.T) {
	assert.Equal(t, 1, ClampMin(0, 1))
	assert.Equal(t, 1, ClampMin(-7, 1))
	assert.Equal(t, 5, ClampMin(5, 1))
}
