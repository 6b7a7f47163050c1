package pagination

import (
	"fmt"
	"strings"
)

// romanLimit is the first value rendered in decimal. Thousands below it
// are written as repeated M.
const romanLimit = 10000

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// upperRoman converts n in [1, romanLimit) using subtractive notation.
// Callers must check the range first: anything else is a programming error.
func upperRoman(n int) string {
	if n < 1 || n >= romanLimit {
		panic(fmt.Sprintf("pagination: roman numeral out of range: %d", n))
	}
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

func lowerRoman(n int) string {
	return strings.ToLower(upperRoman(n))
}
