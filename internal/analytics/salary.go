package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryNumber = regexp.MustCompile(`([$€£])?\s*(\d[\d,]*(?:\.\d+)?)(?:\s*([kK])\b)?`)

// minBareSalary is the smallest figure accepted without a currency symbol.
const minBareSalary = 1000

type salaryToken struct {
	value      float64
	currency   bool
	start, end int
}

// ParseSalary scrapes a numeric value out of free-text salary. When any figure
// carries a currency symbol only those count, otherwise figures below
// minBareSalary are ignored. A "k" suffix multiplies by 1000. Two figures
// joined by "-" or "to" form a range and contribute their midpoint. ok is false
// when nothing qualifies.
func ParseSalary(text string) (value float64, ok bool) {
	tokens := scanSalary(text)
	anyCurrency := false
	for _, tok := range tokens {
		anyCurrency = anyCurrency || tok.currency
	}

	var first *salaryToken
	for i := range tokens {
		tok := &tokens[i]
		if first != nil {
			if isRangeSeparator(text[first.end:tok.start]) {
				return (first.value + tok.value) / 2, true
			}
			break
		}
		if anyCurrency && !tok.currency {
			continue
		}
		if !anyCurrency && tok.value < minBareSalary {
			continue
		}
		first = tok
	}
	if first == nil {
		return 0, false
	}
	return first.value, true
}

func scanSalary(text string) []salaryToken {
	matches := salaryNumber.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]salaryToken, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(strings.ReplaceAll(text[m[4]:m[5]], ",", ""), 64)
		if err != nil {
			continue
		}
		if m[6] >= 0 {
			n *= 1000
		}
		tokens = append(tokens, salaryToken{value: n, currency: m[2] >= 0, start: m[0], end: m[1]})
	}
	return tokens
}

func isRangeSeparator(between string) bool {
	switch strings.ToLower(strings.TrimSpace(between)) {
	case "-", "–", "—", "to":
		return true
	default:
		return false
	}
}
