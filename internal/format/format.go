// Package format holds the monetary display helpers shared by the PDF
// renderer and the handlers.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Amount renders a rounded amount with a space as thousands separator and
// the currency label appended, e.g. 1234567.8 -> "1 234 568 Ar".
func Amount(val float64, currency string) string {
	rounded := int64(math.Round(val))
	neg := rounded < 0
	if neg {
		rounded = -rounded
	}
	s := strconv.FormatInt(rounded, 10)
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

var (
	units = []string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	teens = []string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	tens  = []string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante-dix", "quatre-vingt", "quatre-vingt-dix"}
)

func convertGroup(n int) string {
	var res strings.Builder
	h := n / 100
	t := n % 100
	if h > 0 {
		if h == 1 {
			res.WriteString("cent")
		} else {
			res.WriteString(units[h] + " cent")
		}
		res.WriteByte(' ')
	}
	if t > 0 {
		switch {
		case t < 10:
			res.WriteString(units[t])
		case t < 20:
			res.WriteString(teens[t-10])
		default:
			res.WriteString(tens[t/10])
			if t%10 > 0 {
				if t%10 == 1 {
					res.WriteString("-et-un")
				} else {
					res.WriteString("-" + units[t%10])
				}
			}
		}
	}
	return strings.TrimSpace(res.String())
}

// AmountInWords converts a monetary amount to French words with the Ariary
// label, following the phrasing used on printed documents.
func AmountInWords(amount float64) string {
	n := int(math.Floor(amount))
	if n == 0 {
		return "zéro Ariary"
	}

	var result strings.Builder
	millions := n / 1000000
	thousands := (n % 1000000) / 1000
	remainder := n % 1000

	if millions > 0 {
		result.WriteString(convertGroup(millions))
		if millions > 1 {
			result.WriteString(" millions ")
		} else {
			result.WriteString(" million ")
		}
	}
	if thousands > 0 {
		if thousands == 1 {
			result.WriteString("mille ")
		} else {
			result.WriteString(convertGroup(thousands) + " mille ")
		}
	}
	if remainder > 0 {
		result.WriteString(convertGroup(remainder))
	}

	out := strings.TrimSpace(result.String())
	return strings.ToUpper(out[:1]) + out[1:] + " Ariary"
}
