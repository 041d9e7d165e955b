package utils

import (
	"fmt"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scales are the Indian numbering groups, largest first.
var scales = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells out n >= 0 using lakh and crore grouping. Zero is "".
func NumberToWords(n int64) string {
	if n < 20 {
		if n <= 0 {
			return ""
		}
		return ones[n]
	}
	if n < 100 {
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	}
	for _, s := range scales {
		if n < s.size {
			continue
		}
		head := NumberToWords(n/s.size) + " " + s.name
		if rest := n % s.size; rest > 0 {
			return head + " " + NumberToWords(rest)
		}
		return head
	}
	return ""
}

// AmountToWords renders a whole-rupee amount for the roster footer.
func AmountToWords(amount int64) string {
	if amount <= 0 {
		return "Zero Rupees Only"
	}
	return fmt.Sprintf("%s Rupees Only", NumberToWords(amount))
}
