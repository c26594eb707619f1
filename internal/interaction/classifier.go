// Package interaction classifies drug-drug interaction findings into a
// coarse three-level severity.
package interaction

import "strings"

type Severity string

const (
	SeverityMajor    Severity = "major"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// Keyword tiers are checked in order; the first tier with any hit wins.
// There is deliberately no scoring: a text mentioning both "contraindicated"
// and "monitor" is still major.
var (
	majorKeywords    = []string{"contraindicated", "avoid", "serious", "life-threatening", "fatal", "severe"}
	moderateKeywords = []string{"caution", "monitor", "adjust", "reduce", "increase", "significant"}
)

// ClassifySeverity maps free interaction prose to a severity tier. It is
// total: every input, including the empty string, yields exactly one tier.
func ClassifySeverity(text string) Severity {
	t := strings.ToLower(text)

	for _, kw := range majorKeywords {
		if strings.Contains(t, kw) {
			return SeverityMajor
		}
	}
	for _, kw := range moderateKeywords {
		if strings.Contains(t, kw) {
			return SeverityModerate
		}
	}
	return SeverityMinor
}
