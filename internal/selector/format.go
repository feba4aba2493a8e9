package selector

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency formata em reais: 12345.5 vira "R$ 12.345,50".
func FormatCurrency(value float64) string {
	if value < 0 {
		return "-R$ " + formatDecimal(math.Abs(value))
	}
	return "R$ " + formatDecimal(value)
}

// FormatQuantity formata o saldo de estoque que o ERP devolve como texto.
// Valor inválido vira "0,00".
func FormatQuantity(value string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0,00"
	}
	return formatDecimal(v)
}

func formatDecimal(v float64) string {
	return brPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}
