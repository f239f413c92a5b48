package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal amount with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatCaseNumber renders a 20-digit case number as NNNNNNN-DD.AAAA.J.TR.OOOO.
// Anything else is returned unchanged.
func FormatCaseNumber(num string) string {
	d := digitsOnly(num)
	if len(d) != 20 {
		return num
	}
	return fmt.Sprintf("%s-%s.%s.%s.%s.%s", d[0:7], d[7:9], d[9:13], d[13:14], d[14:16], d[16:20])
}

// FormatTaxID renders an 11-digit individual taxpayer ID as XXX.XXX.XXX-XX.
// Empty input yields "N/A"; other lengths are returned unchanged.
func FormatTaxID(id string) string {
	if strings.TrimSpace(id) == "" {
		return "N/A"
	}
	d := digitsOnly(id)
	if len(d) != 11 {
		return id
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
