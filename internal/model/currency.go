package model

// Currency is a supported currency code with its display symbol.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

var Currencies = []Currency{
	{"INR", "₹", "Indian Rupee"},
	{"USD", "$", "US Dollar"},
	{"EUR", "€", "Euro"},
	{"GBP", "£", "British Pound"},
	{"JPY", "¥", "Japanese Yen"},
	{"CNY", "¥", "Chinese Yuan"},
	{"AUD", "A$", "Australian Dollar"},
	{"CAD", "C$", "Canadian Dollar"},
}

// CurrencySymbol returns the display symbol for a code, or the code itself
// when it is not one of the supported currencies.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}
