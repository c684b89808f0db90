// Package rating maps agency credit ratings onto a 0-10 ordinal scale used for
// scoring and minimum-threshold checks. The scale is a lookup structure passed
// to consumers so deployments can extend it without touching engine logic.
package rating

// NeutralScore is used when a bank carries no rating or an unknown grade.
const NeutralScore = 5

// Scale maps rating symbols (S&P letter grades and Moody's equivalents) to
// ordinal scores. Higher is better.
type Scale map[string]float64

// DefaultScale returns the standard scale covering AAA..D and Aa1..Caa3.
func DefaultScale() Scale {
	return Scale{
		"AAA": 10,
		"AA+": 9, "Aa1": 9,
		"AA": 8.5, "Aa2": 8.5,
		"AA-": 8, "Aa3": 8,
		"A+": 7.5, "A1": 7.5,
		"A": 7, "A2": 7,
		"A-": 6.5, "A3": 6.5,
		"BBB+": 6, "Baa1": 6,
		"BBB": 5.5, "Baa2": 5.5,
		"BBB-": 5, "Baa3": 5,
		"BB+": 4.5, "Ba1": 4.5,
		"BB": 4, "Ba2": 4,
		"BB-": 3.5, "Ba3": 3.5,
		"B+": 3, "B1": 3,
		"B": 2.5, "B2": 2.5,
		"B-": 2, "B3": 2,
		"CCC+": 1.5, "Caa1": 1.5,
		"CCC": 1, "Caa2": 1,
		"CCC-": 0.5, "Caa3": 0.5,
		"D": 0,
	}
}

// Score returns the ordinal score for a rating, or NeutralScore when the
// rating is absent or not on the scale.
func (s Scale) Score(r *string) float64 {
	if r == nil {
		return NeutralScore
	}
	if v, ok := s[*r]; ok {
		return v
	}
	return NeutralScore
}

// Known reports whether the symbol is on the scale.
func (s Scale) Known(r string) bool {
	_, ok := s[r]
	return ok
}

// Meets reports whether bankRating satisfies the minimum floor. No minimum
// always passes; a minimum with no bank rating fails; ties pass.
func (s Scale) Meets(bankRating, minimum *string) bool {
	if minimum == nil {
		return true
	}
	if bankRating == nil {
		return false
	}
	return s.Score(bankRating) >= s.Score(minimum)
}

// Symbols lists the S&P grades in descending order, for UI dropdowns and
// input validation.
func Symbols() []string {
	return []string{
		"AAA", "AA+", "AA", "AA-",
		"A+", "A", "A-",
		"BBB+", "BBB", "BBB-",
		"BB+", "BB", "BB-",
		"B+", "B", "B-",
		"CCC+", "CCC", "CCC-",
		"D",
	}
}
