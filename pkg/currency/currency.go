package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is one row of the static conversion table. Rates are relative to
// USD; stored amounts are always USD and are never rewritten, conversion is
// display-only.
type Currency struct {
	Code   string
	Symbol string
	Rate   float64
}

var table = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Rate: 1},
	"EUR": {Code: "EUR", Symbol: "€", Rate: 0.92},
	"GBP": {Code: "GBP", Symbol: "£", Rate: 0.79},
	"RWF": {Code: "RWF", Symbol: "FRw", Rate: 1300},
}

// Lookup returns the table entry for code, falling back to USD when the code
// is unrecognized.
func Lookup(code string) Currency {
	if c, ok := table[code]; ok {
		return c
	}
	return table["USD"]
}

// Codes lists the supported currency codes.
func Codes() []string {
	return []string{"USD", "EUR", "GBP", "RWF"}
}

var printer = message.NewPrinter(language.English)

// Format converts amount into the selected currency and renders it with the
// currency symbol, thousands separators and exactly two fraction digits.
func Format(amount float64, code string) string {
	c := Lookup(code)
	return c.Symbol + printer.Sprintf("%v", number.Decimal(amount*c.Rate, number.Scale(2)))
}
