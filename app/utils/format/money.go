package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Every field is set, so FormatMoneyDecimal never writes to usd.
var usd = accounting.Accounting{
	Symbol:         "$",
	Precision:      2,
	Thousand:       ",",
	Decimal:        ".",
	Format:         "%s%v",
	FormatNegative: "-%s%v",
	FormatZero:     "%s%v",
}

func FormatUSD(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}
