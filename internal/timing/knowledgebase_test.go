package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_ExactMatchCaseInsensitive(t *testing.T) {
	kb := NewKnowledgeBase()

	data, ok := kb.Lookup("Levothyroxine")
	require.True(t, ok)
	assert.Equal(t, Morning, data.TimeOfDay)
	require.NotNil(t, data.WithFood)
	assert.False(t, *data.WithFood)
	assert.Equal(t, 240, data.SeparationMinutes)
}

func TestLookup_SubstringBothDirections(t *testing.T) {
	kb := NewKnowledgeBase()

	// Key is a substring of the query.
	data, ok := kb.Lookup("calcium carbonate 500mg")
	require.True(t, ok)
	assert.Equal(t, 240, data.SeparationMinutes)

	// Query is a substring of the key.
	data, ok = kb.Lookup("ferrous")
	require.True(t, ok)
	assert.Contains(t, data.AvoidFoods, "dairy")
}

func TestLookup_TableOrderWins(t *testing.T) {
	kb := NewKnowledgeBaseFromEntries([]Entry{
		{Key: "vitamin d3", Data: MedicationTiming{TimeOfDay: Evening}},
		{Key: "vitamin", Data: MedicationTiming{TimeOfDay: Morning}},
	})

	// Both keys substring-match; the first entry must win.
	data, ok := kb.Lookup("vitamin d3 2000iu")
	require.True(t, ok)
	assert.Equal(t, Evening, data.TimeOfDay)
}

func TestLookup_ExactBeatsEarlierSubstring(t *testing.T) {
	kb := NewKnowledgeBaseFromEntries([]Entry{
		{Key: "iron", Data: MedicationTiming{SeparationMinutes: 120}},
		{Key: "iron bisglycinate", Data: MedicationTiming{SeparationMinutes: 60}},
	})

	data, ok := kb.Lookup("iron bisglycinate")
	require.True(t, ok)
	assert.Equal(t, 60, data.SeparationMinutes)
}

func TestLookup_MissReturnsZeroValue(t *testing.T) {
	kb := NewKnowledgeBase()

	data, ok := kb.Lookup("adalimumab")
	assert.False(t, ok)
	assert.Equal(t, MedicationTiming{}, data)

	_, ok = kb.Lookup("   ")
	assert.False(t, ok)
}

func TestEnrich_InputTakesPrecedence(t *testing.T) {
	kb := NewKnowledgeBase()

	in := MedicationTiming{
		Name:      "levothyroxine",
		TimeOfDay: Evening, // explicit caller value, must survive
	}
	out := kb.Enrich(in)

	assert.Equal(t, Evening, out.TimeOfDay)
	// Unset fields are filled from the table.
	require.NotNil(t, out.WithFood)
	assert.False(t, *out.WithFood)
	assert.Equal(t, 240, out.SeparationMinutes)
	assert.Equal(t, 60, out.BeforeMealMinutes)
}

func TestEnrich_FlagsAreORMerged(t *testing.T) {
	kb := NewKnowledgeBase()

	out := kb.Enrich(MedicationTiming{Name: "doxycycline"})
	assert.True(t, out.Photosensitivity)

	// A caller-set flag survives even when the table entry has it false.
	out = kb.Enrich(MedicationTiming{Name: "metformin", Drowsiness: true})
	assert.True(t, out.Drowsiness)
}

func TestEnrich_UnknownNameUnchanged(t *testing.T) {
	kb := NewKnowledgeBase()

	in := MedicationTiming{Name: "adalimumab", Dosage: "40mg"}
	assert.Equal(t, in, kb.Enrich(in))
}

func TestNameClassifiers(t *testing.T) {
	assert.True(t, IsThyroid("Levothyroxine 50mcg"))
	assert.True(t, IsThyroid("Synthroid"))
	assert.False(t, IsThyroid("metformin"))

	assert.True(t, ContainsCalcium("Calcium Citrate"))
	assert.True(t, ContainsCalcium("TUMS"))
	assert.False(t, ContainsCalcium("iron"))

	assert.True(t, IsIron("Ferrous Sulfate"))
	assert.False(t, IsIron("calcium"))
}
