// internal/scoring/parse.go
package scoring

import (
	"math"
	"strconv"
	"strings"

	"studyabroad-workers/internal/models"
)

// Signals are the numeric values behind a profile's free-form fields. Anything
// missing or unparsable is 0, which every rule treats as absent.
type Signals struct {
	IELTS  float64
	GRE    float64
	GPA    float64
	Budget int64
}

// ParseSignals converts the string fields of p into numbers.
func ParseSignals(p models.UserProfile) Signals {
	return Signals{
		IELTS:  ParseScore(p.IELTSScore),
		GRE:    ParseScore(p.GREScore),
		GPA:    ParseGPA(p.GPA),
		Budget: BudgetCeiling(p.BudgetRange),
	}
}

// ParseScore reads the leading decimal number of s ("7.5", " 7.5 overall").
func ParseScore(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !dot {
			dot = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseGPA returns the numerator of "3.6/4.0". A bare "85%" parses as 85.
func ParseGPA(s string) float64 {
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return ParseScore(s)
}

// ExtractAmounts returns every money amount in s, in order of appearance.
// Commas between digits are thousands separators, anything after a decimal
// point is dropped, and a trailing k or K multiplies by 1000.
func ExtractAmounts(s string) []int64 {
	var out []int64
	i := 0
	for i < len(s) {
		if !isDigit(s[i]) {
			i++
			continue
		}
		var n int64
		for i < len(s) {
			switch {
			case isDigit(s[i]):
				d := int64(s[i] - '0')
				if n > (math.MaxInt64-d)/10 {
					n = math.MaxInt64
				} else {
					n = n*10 + d
				}
				i++
				continue
			case s[i] == ',' && i+1 < len(s) && isDigit(s[i+1]):
				i++
				continue
			}
			break
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
		if i < len(s) && (s[i] == 'k' || s[i] == 'K') {
			if n > math.MaxInt64/1000 {
				n = math.MaxInt64
			} else {
				n *= 1000
			}
			i++
		}
		out = append(out, n)
	}
	return out
}

// BudgetCeiling is the largest amount in a budget range, 0 if none.
func BudgetCeiling(s string) int64 {
	var ceiling int64
	for _, v := range ExtractAmounts(s) {
		if v > ceiling {
			ceiling = v
		}
	}
	return ceiling
}

// TuitionFloor is the first amount in a tuition fee string, 0 if none.
func TuitionFloor(s string) int64 {
	amounts := ExtractAmounts(s)
	if len(amounts) == 0 {
		return 0
	}
	return amounts[0]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
