package pricing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySymbol = "₹"

var displayLocale = language.MustParse("en-IN")

// FormatPrice renders a headline price rounded to the nearest hundred, e.g. 4375 -> "₹4,400".
func FormatPrice(price int) string {
	rounded := int(math.Round(float64(price)/100) * 100)

	return FormatPriceExact(rounded)
}

// FormatPriceExact renders a price without rounding, e.g. 4375 -> "₹4,375".
func FormatPriceExact(price int) string {
	p := message.NewPrinter(displayLocale)

	return currencySymbol + p.Sprintf("%d", price)
}
