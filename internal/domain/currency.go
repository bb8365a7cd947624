package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idrPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way the site displays prices, e.g. "Rp 85.000".
func FormatRupiah(amount int64) string {
	return idrPrinter.Sprintf("Rp %d", amount)
}
