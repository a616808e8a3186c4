package gofpdf

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amounts = message.NewPrinter(language.English)

// formatAmount renders a money value with thousand separators and exactly two
// decimal places, e.g. 1000 -> "1,000.00".
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return amounts.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// ordinalDate renders a date as "21st August 2024".
func ordinalDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s %d", t.Day(), ordinalSuffix(t.Day()), t.Month(), t.Year())
}

func ordinalSuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
