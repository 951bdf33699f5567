package format

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"149.95", "$149.95"},
		{"1234.5", "$1,234.50"},
		{"0", "$0.00"},
		{"-24.99", "-$24.99"},
		{"1000000.005", "$1,000,000.01"},
		{"9007199254740993.10", "$9,007,199,254,740,993.10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatUSDConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "$29.99", FormatUSD(decimal.RequireFromString("29.99")))
		}()
	}
	wg.Wait()
}
