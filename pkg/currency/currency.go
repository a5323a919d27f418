// Package currency formatea precios en rupias (INR) con la convención en-IN.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	indianEnglish = language.MustParse("en-IN")
	printer       = message.NewPrinter(indianEnglish)
)

// Symbol símbolo de la rupia.
const Symbol = "₹"

// FormatINR devuelve el importe con símbolo y exactamente dos decimales (ej. "₹1,234.50").
func FormatINR(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + Symbol + printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatINRPtr igual que FormatINR; nil devuelve "".
func FormatINRPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return FormatINR(*amount)
}
