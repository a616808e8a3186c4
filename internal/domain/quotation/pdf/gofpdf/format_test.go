package gofpdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(1000), "1,000.00"},
		{decimal.NewFromInt(0), "0.00"},
		{decimal.NewFromFloat(12.5), "12.50"},
		{decimal.NewFromFloat(1234567.891), "1,234,567.89"},
		{decimal.NewFromFloat(999.999), "1,000.00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, formatAmount(tc.in))
	}
}

func TestFormatAmountDeterministic(t *testing.T) {
	d := decimal.NewFromFloat(1000)
	first := formatAmount(d)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, formatAmount(d))
	}
}

func TestOrdinalDate(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "1st August 2024"},
		{2, "2nd August 2024"},
		{3, "3rd August 2024"},
		{4, "4th August 2024"},
		{11, "11th August 2024"},
		{12, "12th August 2024"},
		{13, "13th August 2024"},
		{21, "21st August 2024"},
		{22, "22nd August 2024"},
		{23, "23rd August 2024"},
		{31, "31st August 2024"},
	}
	for _, tc := range cases {
		d := time.Date(2024, 8, tc.day, 0, 0, 0, 0, time.UTC)
		require.Equal(t, tc.want, ordinalDate(d))
	}
}
