package output

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when an amount carries no currency code.
const DefaultCurrency = "TWD"

// Locale is the display locale of amounts and dates.
var Locale = language.MustParse("zh-TW")

// symbols as rendered in the zh-TW locale. Other valid codes print as
// "CODE 1,234".
var symbols = map[string]string{
	"TWD": "$",
	"USD": "US$",
	"JPY": "¥",
	"EUR": "€",
	"GBP": "£",
	"CNY": "CN¥",
	"HKD": "HK$",
	"KRW": "￦",
}

// FormatCurrency renders amount with zh-TW digit grouping and zero to two
// fraction digits, prefixed by the currency symbol. An empty code means
// DefaultCurrency; an unknown code is printed as given.
func FormatCurrency(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	p := message.NewPrinter(Locale)
	digits := p.Sprint(number.Decimal(abs(amount),
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))

	sign := ""
	if amount < 0 && digits != "0" {
		sign = "-"
	}

	if sym, ok := symbols[code]; ok {
		return sign + sym + digits
	}
	if unit, err := currency.ParseISO(code); err == nil {
		return sign + unit.String() + " " + digits
	}
	return sign + code + " " + digits
}

// Money is an amount with its currency. It prints with FormatCurrency, so
// tables show it the way the web pages do.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (m Money) String() string {
	return FormatCurrency(m.Amount, m.Currency)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
