package marker

import (
	"strconv"
	"strings"
)

// NumericSuffix follows every auto-numbering marker.
const NumericSuffix = '.'

// Alphabets for auto-numbering.
const (
	DecimalDigits     = "0123456789"
	LowerLatinLetters = "abcdefghijklmnopqrstuvwxyz"
	UpperLatinLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ConvertNumberToString converts a number to its representation in a
// positional system, using the symbols of alphabet as digits, followed by
// NumericSuffix.
//
// If oneBased is set, the alphabet has no symbol for zero: the first symbol
// stands for 1 and counting continues from the last symbol to two-symbol
// numbers, as in a, …, z, aa, ab, … (bijective numbering). Otherwise the
// first symbol is the zero digit.
func ConvertNumberToString(number int, oneBased bool, alphabet string) string {
	symbols := []rune(alphabet)
	if len(symbols) == 0 {
		return string(NumericSuffix)
	}
	n := int64(number)
	disjoint := int64(0)
	if oneBased {
		n--
		disjoint = 1
	}
	if n < 0 {
		n = 0
	}
	base := int64(len(symbols))
	if n < base {
		return string([]rune{symbols[n], NumericSuffix})
	}
	digits := 1
	for limit, accumulated := base, base; n >= accumulated; limit, digits = limit*base, digits+1 {
		accumulated = limit*base + disjoint*accumulated
	}
	result := make([]rune, digits+1)
	result[digits] = NumericSuffix
	for i := digits - 1; i >= 0; i-- {
		result[i] = symbols[n%base]
		n = n/base - disjoint
	}
	return string(result)
}

// Roman numerals, per place from units to thousands.
var romanNumerals = [2][4][3]rune{
	{{'i', 'v', 'x'}, {'x', 'l', 'c'}, {'c', 'd', 'm'}, {'m', 0, 0}},
	{{'I', 'V', 'X'}, {'X', 'L', 'C'}, {'C', 'D', 'M'}, {'M', 0, 0}},
}

// MaxRomanNumber is the largest number with a Roman representation.
const MaxRomanNumber = 3999

// ConvertNumberToRomanString converts a number to a Roman numeral, followed by
// NumericSuffix. Numbers larger than MaxRomanNumber have no Roman form; they
// are returned as plain decimal digits, without suffix.
func ConvertNumberToRomanString(number int, uppercase bool) string {
	if number > MaxRomanNumber {
		return strconv.Itoa(number)
	}
	set := 0
	if uppercase {
		set = 1
	}
	var b strings.Builder
	place := 1000
	for p := 3; p >= 0; p-- {
		if number < 0 {
			break
		}
		addRomanDigit(&b, number/place%10, romanNumerals[set][p])
		place /= 10
	}
	b.WriteRune(NumericSuffix)
	return b.String()
}

// addRomanDigit writes digit d of a place, given the symbols for one, five and
// ten units of that place.
func addRomanDigit(b *strings.Builder, d int, symbols [3]rune) {
	one, five, ten := symbols[0], symbols[1], symbols[2]
	switch {
	case d == 9:
		b.WriteRune(one)
		b.WriteRune(ten)
	case d >= 5:
		b.WriteRune(five)
		b.WriteString(strings.Repeat(string(one), d-5))
	case d == 4:
		b.WriteRune(one)
		b.WriteRune(five)
	default:
		b.WriteString(strings.Repeat(string(one), d))
	}
}
