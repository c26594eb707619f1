package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Severity
	}{
		{"contraindicated", "Concurrent use is contraindicated.", SeverityMajor},
		{"avoid and fatal", "Avoid concurrent use; may be fatal", SeverityMajor},
		{"severe uppercase", "SEVERE bleeding risk reported", SeverityMajor},
		{"monitor", "Monitor INR closely when coadministered.", SeverityModerate},
		{"dose adjust", "Dose adjustment may be required.", SeverityModerate},
		{"significant", "May cause a significant increase in exposure.", SeverityModerate},
		{"plain text", "May be taken together.", SeverityMinor},
		{"empty", "", SeverityMinor},
		{"unrelated words", "Absorption is unaffected by food.", SeverityMinor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySeverity(tc.text))
		})
	}
}

// The major tier always wins regardless of what else appears in the text.
func TestClassifySeverity_MajorBeatsModerate(t *testing.T) {
	got := ClassifySeverity("Monitor patients closely; use is contraindicated in renal impairment.")
	assert.Equal(t, SeverityMajor, got)
}
