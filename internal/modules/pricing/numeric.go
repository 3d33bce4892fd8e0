// README: Defensive parsers for the loosely formatted numbers and durations
// found in catalog data and trip input.
package pricing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// "1.010" style dot-grouped integers (groups of exactly 3 digits).
	reThousandsDots = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)
	// "0.280" style fractions that must NOT be treated as dot grouping.
	reZeroFraction = regexp.MustCompile(`^-?0\.\d{3}$`)
	reNumberToken  = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	reWhitespace   = regexp.MustCompile(`\s+`)
	reEUR          = regexp.MustCompile(`(?i)EUR`)
	reDuration     = regexp.MustCompile(`^(\d+):([0-5]\d)$`)
	reWallClock    = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// ParseNumber reads currency-marked, space/dot-grouped, comma-decimal
// numeric strings ("1 041,50", "0.280", "€ 2,55"). It never fails loudly:
// absence of a parseable number is reported as ok=false and callers that
// need a default must coalesce explicitly.
func ParseNumber(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(s, " ", " ")
	cleaned = strings.ReplaceAll(cleaned, "€", "")
	cleaned = reEUR.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.Contains(cleaned, ",") {
		// Comma is the decimal separator; dots and spaces are grouping.
		cleaned = strings.NewReplacer(" ", "", ".", "").Replace(cleaned)
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = reWhitespace.ReplaceAllString(cleaned, "")
		if reThousandsDots.MatchString(cleaned) && !reZeroFraction.MatchString(cleaned) {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	token := reNumberToken.FindString(cleaned)
	if token == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDuration reads "H:MM" with minutes 00-59 and returns total minutes.
// Blank input is 0; anything else malformed is a hard error.
func ParseDuration(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	m := reDuration.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (use H:MM, minutes 00-59)", s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// RoundToCents rounds to 2 decimals. The epsilon counters binary float
// representation error at the .005 boundary, so 2.675 rounds up to 2.68.
func RoundToCents(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
	}
	return math.Round((x+1e-9)*100) / 100
}

// parseWallClock reads a 24h "HH:MM" boundary as minutes since midnight.
func parseWallClock(s string) (int, bool) {
	m := reWallClock.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, true
}
