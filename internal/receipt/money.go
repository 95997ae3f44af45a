package receipt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money renders amounts with a currency symbol and the locale's decimal
// and grouping separators.
type Money struct {
	printer *message.Printer
	symbol  string
}

func NewMoney(locale, symbol string) Money {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return Money{printer: message.NewPrinter(tag), symbol: symbol}
}

func (m Money) Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + m.Format(d.Neg())
	}
	amount := m.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
	if m.symbol == "" {
		return amount
	}
	return m.symbol + " " + amount
}
