package rank

import (
	"strconv"
	"strings"
	"unicode"
)

// Division is a sub-rank inside a tier below master. 1 is the strongest and
// 4 the weakest. The zero value means no division is set.
type Division uint8

const (
	DivisionUnset Division = 0
	Division1     Division = 1
	Division2     Division = 2
	Division3     Division = 3
	Division4     Division = 4
)

const (
	highestDivision = Division1
	lowestDivision  = Division4
)

var divisionTokens = map[string]Division{
	"1":   Division1,
	"2":   Division2,
	"3":   Division3,
	"4":   Division4,
	"i":   Division1,
	"ii":  Division2,
	"iii": Division3,
	"iv":  Division4,
}

func (d Division) IsSet() bool {
	return d >= highestDivision && d <= lowestDivision
}

func (d Division) Int() int {
	if !d.IsSet() {
		return 0
	}
	return int(d)
}

func (d Division) String() string {
	if !d.IsSet() {
		return ""
	}
	return strconv.Itoa(int(d))
}

// DivisionFromInt converts a stored integer. Values outside 1..4 are unset.
func DivisionFromInt(v int) Division {
	if v < int(highestDivision) || v > int(lowestDivision) {
		return DivisionUnset
	}
	return Division(v)
}

// clamp treats an unset division as the weakest one.
func (d Division) clamp() Division {
	if !d.IsSet() {
		return lowestDivision
	}
	return d
}

// NormalizeDivision extracts the first standalone division marker (an arabic
// 1..4 or a roman i..iv) from a label. A label that names a tier without
// divisions yields DivisionUnset.
func NormalizeDivision(label string) Division {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return DivisionUnset
	}
	if tier := detectTier(lower); tier.IsSet() && !tier.HasDivisions() {
		return DivisionUnset
	}

	for _, token := range tokenize(lower) {
		if division, ok := divisionTokens[token]; ok {
			return division
		}
	}
	return DivisionUnset
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
