package schedule

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewise/medsafe/internal/timing"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func boolp(b bool) *bool { return &b }

func slotByTime(t *testing.T, s DailySchedule, at string) Slot {
	t.Helper()
	for _, slot := range s.Slots {
		if slot.Time == at {
			return slot
		}
	}
	t.Fatalf("no slot at %s, have %v", at, slotTimes(s))
	return Slot{}
}

func slotTimes(s DailySchedule) []string {
	times := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		times = append(times, slot.Time)
	}
	return times
}

func medNames(s Slot) []string {
	names := make([]string, 0, len(s.Medications))
	for _, d := range s.Medications {
		names = append(names, d.Name)
	}
	return names
}

func TestGenerate_EmptyInput(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate(nil, testDate)

	assert.Equal(t, []Slot{}, s.Slots)
	assert.Equal(t, []string{}, s.Warnings)
	assert.Equal(t, generalTips, s.GeneralInstructions)
	assert.Nil(t, s.MealPlan)
}

func TestGenerate_ThyroidCalciumWarning(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "levothyroxine", TimeOfDay: timing.Morning, WithFood: boolp(false)},
		{Name: "calcium", WithFood: boolp(true)},
	}, testDate)

	require.NotEmpty(t, s.Warnings)
	assert.Contains(t, s.Warnings[0], "levothyroxine")
	assert.Contains(t, s.Warnings[0], "calcium")
	assert.Contains(t, s.Warnings[0], "4 hours")
}

func TestGenerate_TwiceDailyWithMeals(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "metformin", WithFood: boolp(true), Frequency: "twice daily"},
	}, testDate)

	require.Len(t, s.Slots, 2)

	breakfast := slotByTime(t, s, "07:45")
	assert.Equal(t, []string{"metformin"}, medNames(breakfast))
	assert.Contains(t, breakfast.Instructions, "Take with breakfast.")
	assert.Equal(t, MealWith, breakfast.MealTiming)

	dinner := slotByTime(t, s, "18:45")
	assert.Equal(t, []string{"metformin"}, medNames(dinner))
	assert.Contains(t, dinner.Instructions, "Take with dinner.")
}

func TestGenerate_ThreeTimesDailyUsesAllMeals(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "metformin", WithFood: boolp(true), Frequency: "three times daily"},
	}, testDate)

	assert.Equal(t, []string{"07:45", "12:45", "18:45"}, slotTimes(s))
}

// Only the first medication of the with-meals bucket is repeated at the
// later meal anchors; the others appear once, at breakfast. This pins the
// shipped behavior so any future fix is a deliberate one.
func TestGenerate_WithMealsDistributionRepeatsOnlyFirstMedication(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "metformin", WithFood: boolp(true), Frequency: "twice daily"},
		{Name: "aspirin", WithFood: boolp(true), Frequency: "twice daily"},
	}, testDate)

	breakfast := slotByTime(t, s, "07:45")
	assert.Equal(t, []string{"metformin", "aspirin"}, medNames(breakfast))

	dinner := slotByTime(t, s, "18:45")
	assert.Equal(t, []string{"metformin"}, medNames(dinner))
}

func TestGenerate_BucketPriorityOrder(t *testing.T) {
	g := NewGenerator(nil)

	// Morning outranks with-meals even when withFood is set.
	s := g.Generate([]timing.MedicationTiming{
		{Name: "prednisone", TimeOfDay: timing.Morning, WithFood: boolp(true)},
	}, testDate)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, "07:45", s.Slots[0].Time)
	assert.Contains(t, s.Slots[0].Instructions, "Take with breakfast.")

	// Morning without food lands at the empty-stomach anchor.
	s = g.Generate([]timing.MedicationTiming{
		{Name: "levothyroxine", TimeOfDay: timing.Morning, WithFood: boolp(false)},
	}, testDate)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, "06:30", s.Slots[0].Time)
	assert.Equal(t, MealBefore, s.Slots[0].MealTiming)

	// No constraints at all falls through to between-meals.
	s = g.Generate([]timing.MedicationTiming{
		{Name: "unconstrainedol"},
	}, testDate)
	require.Len(t, s.Slots, 1)
	assert.Equal(t, "10:00", s.Slots[0].Time)
	assert.Equal(t, MealBetween, s.Slots[0].MealTiming)
}

func TestGenerate_SlotsSortedByTime(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "melatonin", TimeOfDay: timing.Bedtime},
		{Name: "atorvastatin", TimeOfDay: timing.Evening},
		{Name: "unknownol"},
		{Name: "levothyroxine", TimeOfDay: timing.Morning, WithFood: boolp(false)},
	}, testDate)

	times := slotTimes(s)
	assert.True(t, sort.StringsAreSorted(times), "slots out of order: %v", times)
}

func TestGenerate_NoMedicationDropped(t *testing.T) {
	g := NewGenerator(nil)

	meds := []timing.MedicationTiming{
		{Name: "levothyroxine"},
		{Name: "metformin", Frequency: "twice daily"},
		{Name: "atorvastatin"},
		{Name: "melatonin"},
		{Name: "mysteryol"},
		{Name: "aspirin"},
	}
	s := g.Generate(meds, testDate)

	placed := make(map[string]bool)
	for _, slot := range s.Slots {
		for _, d := range slot.Medications {
			placed[d.Name] = true
		}
	}
	for _, m := range meds {
		assert.True(t, placed[m.Name], "medication %s missing from every slot", m.Name)
	}
}

func TestGenerate_SeparationWarningOnSharedSlot(t *testing.T) {
	g := NewGenerator(nil)

	// Both are enriched to morning empty-stomach and land in one slot;
	// levothyroxine requires 240 minutes of separation.
	s := g.Generate([]timing.MedicationTiming{
		{Name: "levothyroxine"},
		{Name: "alendronate"},
	}, testDate)

	slot := slotByTime(t, s, "06:30")
	require.Len(t, slot.Warnings, 1)
	assert.Contains(t, slot.Warnings[0], "levothyroxine")
	assert.Contains(t, slot.Warnings[0], "alendronate")
	assert.Contains(t, slot.Warnings[0], "240 minutes")
}

func TestGenerate_SeparationWarningReportsFirstPairOnly(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "a", TimeOfDay: timing.Evening, SeparationMinutes: 120},
		{Name: "b", TimeOfDay: timing.Evening, SeparationMinutes: 90},
		{Name: "c", TimeOfDay: timing.Evening, SeparationMinutes: 60},
	}, testDate)

	slot := slotByTime(t, s, "19:00")
	require.Len(t, slot.Warnings, 1)
	assert.Contains(t, slot.Warnings[0], "a and b")
}

func TestGenerate_NoSeparationWarningAtOrBelow30(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "a", TimeOfDay: timing.Evening, SeparationMinutes: 30},
		{Name: "b", TimeOfDay: timing.Evening},
	}, testDate)

	slot := slotByTime(t, s, "19:00")
	assert.Empty(t, slot.Warnings)
}

func TestGenerate_AlcoholAndPhotosensitivityWarnings(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "metronidazole"},
		{Name: "trazodone"},
		{Name: "doxycycline"},
	}, testDate)

	var alcohol, sun string
	for _, w := range s.Warnings {
		switch {
		case strings.Contains(w, "alcohol"):
			alcohol = w
		case strings.Contains(w, "sun"):
			sun = w
		}
	}

	require.NotEmpty(t, alcohol, "expected a combined alcohol warning")
	assert.Contains(t, alcohol, "metronidazole")
	assert.Contains(t, alcohol, "trazodone")

	require.NotEmpty(t, sun, "expected a sun exposure warning")
	assert.Contains(t, sun, "doxycycline")
}

func TestGenerate_FoodSummariesDeduplicated(t *testing.T) {
	g := NewGenerator(nil)

	s := g.Generate([]timing.MedicationTiming{
		{Name: "doxycycline"},   // avoid dairy, antacids
		{Name: "ciprofloxacin"}, // avoid dairy again, plus others
	}, testDate)

	require.Len(t, s.GeneralInstructions, len(generalTips)+1)
	avoid := s.GeneralInstructions[len(generalTips)]
	assert.Contains(t, avoid, "dairy")
	assert.Equal(t, 1, strings.Count(avoid, "dairy"))
}

func TestGenerate_MealPlanConditions(t *testing.T) {
	g := NewGenerator(nil)

	// Thyroid wins over everything else at breakfast.
	s := g.Generate([]timing.MedicationTiming{
		{Name: "levothyroxine"},
		{Name: "ferrous sulfate"},
	}, testDate)
	require.NotNil(t, s.MealPlan)
	assert.Contains(t, s.MealPlan.Breakfast, "thyroid")

	// Iron without thyroid gets the iron template.
	s = g.Generate([]timing.MedicationTiming{{Name: "ferrous sulfate"}}, testDate)
	require.NotNil(t, s.MealPlan)
	assert.Contains(t, s.MealPlan.Breakfast, "iron")

	// Fat-soluble meds shape dinner.
	s = g.Generate([]timing.MedicationTiming{{Name: "vitamin d"}}, testDate)
	require.NotNil(t, s.MealPlan)
	assert.Contains(t, s.MealPlan.Dinner, "fat")
}

func TestDosesPerDay(t *testing.T) {
	cases := map[string]int{
		"three times daily": 3,
		"TID":               3,
		"twice daily":       2,
		"bid":               2,
		"four times daily":  4,
		"once daily":        1,
		"":                  1,
	}
	for freq, want := range cases {
		assert.Equal(t, want, dosesPerDay(freq), "frequency %q", freq)
	}
}
