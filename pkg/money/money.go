// Package money formatea montos en taka (moneda única del sistema).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol es el glifo de la moneda (taka bangladesí).
const Symbol = "৳"

// Code es el código ISO usado donde el glifo no se puede renderizar (PDF con fuentes core).
const Code = "BDT"

var printer = message.NewPrinter(language.English)

// Plain devuelve el monto como entero con separador de miles, ej: 1500 → "1,500".
// Los montos se muestran sin fracción; se redondea al entero más cercano.
func Plain(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// Format devuelve el monto con el glifo de la moneda, ej: "৳1,500".
func Format(d decimal.Decimal) string {
	return Symbol + Plain(d)
}

// FormatCode devuelve el monto con el código ISO, ej: "BDT 1,500".
func FormatCode(d decimal.Decimal) string {
	return Code + " " + Plain(d)
}
