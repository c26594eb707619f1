// Package schedule assembles a conflict-aware daily dosing schedule from a
// medication list enriched by the timing knowledge base.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dosewise/medsafe/internal/timing"
)

// Fixed anchor times. All are zero-padded "HH:MM" so slots sort as strings.
const (
	anchorMorningEmpty = "06:30"
	anchorBreakfast    = "07:45"
	anchorBetweenMeals = "10:00"
	anchorLunch        = "12:45"
	anchorAfternoon    = "14:00"
	anchorDinner       = "18:45"
	anchorEvening      = "19:00"
	anchorBedtime      = "21:30"
)

var generalTips = []string{
	"Take your medications at the same times every day.",
	"Use a pill organizer or phone reminders to stay on track.",
	"Do not stop or change a dose without talking to your prescriber.",
}

// Generator is pure and synchronous: it never calls external services and
// cannot fail on valid input.
type Generator struct {
	kb *timing.KnowledgeBase
}

func NewGenerator(kb *timing.KnowledgeBase) *Generator {
	if kb == nil {
		kb = timing.NewKnowledgeBase()
	}
	return &Generator{kb: kb}
}

// Generate builds the daily schedule for the given medications. An unknown
// medication name simply contributes no extra constraints; an empty input
// yields a schedule with no slots and only the generic adherence tips.
func (g *Generator) Generate(medications []timing.MedicationTiming, date time.Time) DailySchedule {
	meds := make([]timing.MedicationTiming, 0, len(medications))
	for _, m := range medications {
		meds = append(meds, g.kb.Enrich(m))
	}

	buckets := partition(meds)
	slots := buildSlots(buckets)
	if slots == nil {
		slots = []Slot{}
	}

	for i := range slots {
		if w := separationWarning(slots[i].Medications, meds); w != "" {
			slots[i].Warnings = append(slots[i].Warnings, w)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })

	sched := DailySchedule{
		Date:                date,
		Slots:               slots,
		GeneralInstructions: buildGeneralInstructions(meds),
		Warnings:            crossMedicationWarnings(meds),
	}
	if len(meds) > 0 {
		sched.MealPlan = buildMealPlan(meds)
	}

	return sched
}

// bucket identifies which timing category a medication lands in. Every
// medication belongs to exactly one; membership is tested in this order.
type bucket int

const (
	bucketMorningEmpty bucket = iota
	bucketMorningWithFood
	bucketAfternoon
	bucketEvening
	bucketBedtime
	bucketWithMeals
	bucketBetweenMeals
	bucketCount
)

func classify(m timing.MedicationTiming) bucket {
	switch {
	case m.TimeOfDay == timing.Morning && !m.WithFoodTrue():
		return bucketMorningEmpty
	case m.TimeOfDay == timing.Morning:
		return bucketMorningWithFood
	case m.TimeOfDay == timing.Afternoon:
		return bucketAfternoon
	case m.TimeOfDay == timing.Evening:
		return bucketEvening
	case m.TimeOfDay == timing.Bedtime:
		return bucketBedtime
	case m.WithFoodTrue() || m.AfterMealMinutes > 0:
		return bucketWithMeals
	default:
		return bucketBetweenMeals
	}
}

func partition(meds []timing.MedicationTiming) [][]timing.MedicationTiming {
	buckets := make([][]timing.MedicationTiming, bucketCount)
	for _, m := range meds {
		b := classify(m)
		buckets[b] = append(buckets[b], m)
	}
	return buckets
}

func buildSlots(buckets [][]timing.MedicationTiming) []Slot {
	var slots []Slot

	if b := buckets[bucketMorningEmpty]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:        anchorMorningEmpty,
			Medications: doses(b),
			MealTiming:  MealBefore,
			Instructions: []string{
				"Take on an empty stomach.",
				"Wait at least 1 hour before eating.",
			},
		})
	}

	if b := buckets[bucketMorningWithFood]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:         anchorBreakfast,
			Medications:  doses(b),
			MealTiming:   MealWith,
			Instructions: []string{"Take with breakfast."},
		})
	}

	if b := buckets[bucketAfternoon]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:        anchorAfternoon,
			Medications: doses(b),
		})
	}

	if b := buckets[bucketEvening]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:        anchorEvening,
			Medications: doses(b),
			MealTiming:  MealAfter,
			Instructions: []string{
				"Take after dinner.",
				"Take at least 2 hours before bed.",
			},
		})
	}

	if b := buckets[bucketBedtime]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:         anchorBedtime,
			Medications:  doses(b),
			Instructions: []string{"Take at bedtime."},
		})
	}

	if b := buckets[bucketWithMeals]; len(b) > 0 {
		slots = append(slots, mealSlots(b)...)
	}

	if b := buckets[bucketBetweenMeals]; len(b) > 0 {
		slots = append(slots, Slot{
			Time:         anchorBetweenMeals,
			Medications:  doses(b),
			MealTiming:   MealBetween,
			Instructions: []string{"Take between meals."},
		})
	}

	return slots
}

// mealSlots distributes the with-meals bucket across daily meal anchors. The
// dose count comes from the first medication's frequency text. Only the first
// medication of the bucket is repeated at the additional anchors; the rest
// are scheduled once, at breakfast. That asymmetry matches the shipped
// behavior and is pinned by a regression test.
func mealSlots(b []timing.MedicationTiming) []Slot {
	type meal struct {
		time string
		name string
	}

	count := dosesPerDay(b[0].Frequency)

	var meals []meal
	switch {
	case count >= 3:
		meals = []meal{{anchorBreakfast, "breakfast"}, {anchorLunch, "lunch"}, {anchorDinner, "dinner"}}
	case count == 2:
		meals = []meal{{anchorBreakfast, "breakfast"}, {anchorDinner, "dinner"}}
	default:
		meals = []meal{{anchorBreakfast, "breakfast"}}
	}

	slots := make([]Slot, 0, len(meals))
	for i, m := range meals {
		medsHere := b
		if i > 0 {
			medsHere = b[:1]
		}
		slots = append(slots, Slot{
			Time:         m.time,
			Medications:  doses(medsHere),
			MealTiming:   MealWith,
			Instructions: []string{fmt.Sprintf("Take with %s.", m.name)},
		})
	}

	return slots
}

// dosesPerDay derives a daily dose count from free frequency text.
func dosesPerDay(frequency string) int {
	f := strings.ToLower(frequency)
	switch {
	case strings.Contains(f, "three") || strings.Contains(f, "tid"):
		return 3
	case strings.Contains(f, "twice") || strings.Contains(f, "bid"):
		return 2
	case strings.Contains(f, "four") || strings.Contains(f, "qid"):
		return 4
	default:
		return 1
	}
}

func doses(meds []timing.MedicationTiming) []Dose {
	out := make([]Dose, 0, len(meds))
	for _, m := range meds {
		out = append(out, Dose{Name: m.Name, Dosage: m.Dosage, Notes: m.Notes})
	}
	return out
}

// separationWarning scans a multi-medication slot for the first pair where
// either side requires more than 30 minutes of separation. Only the first
// qualifying pair is reported; exhaustively enumerating violations would
// swamp the slot with near-duplicate warnings.
func separationWarning(slotMeds []Dose, all []timing.MedicationTiming) string {
	if len(slotMeds) < 2 {
		return ""
	}

	sep := make(map[string]int, len(all))
	for _, m := range all {
		sep[strings.ToLower(m.Name)] = m.SeparationMinutes
	}

	for i := 0; i < len(slotMeds); i++ {
		for j := i + 1; j < len(slotMeds); j++ {
			a, b := slotMeds[i], slotMeds[j]
			minutes := sep[strings.ToLower(a.Name)]
			if minutes <= 30 {
				minutes = sep[strings.ToLower(b.Name)]
			}
			if minutes > 30 {
				return fmt.Sprintf("%s and %s should be taken at least %d minutes apart.", a.Name, b.Name, minutes)
			}
		}
	}

	return ""
}

// crossMedicationWarnings is computed independently of slot assignment so a
// hazardous combination is flagged even when the pair lands in different
// slots.
func crossMedicationWarnings(meds []timing.MedicationTiming) []string {
	warnings := []string{}

	var thyroid, calcium string
	for _, m := range meds {
		if thyroid == "" && timing.IsThyroid(m.Name) {
			thyroid = m.Name
		}
		if calcium == "" && timing.ContainsCalcium(m.Name) {
			calcium = m.Name
		}
	}
	if thyroid != "" && calcium != "" {
		warnings = append(warnings, fmt.Sprintf(
			"Take %s at least 4 hours apart from %s: calcium blocks thyroid hormone absorption.",
			thyroid, calcium))
	}

	if names := namesWhere(meds, func(m timing.MedicationTiming) bool { return m.AlcoholInteraction }); len(names) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Avoid alcohol while taking: %s.", strings.Join(names, ", ")))
	}

	if names := namesWhere(meds, func(m timing.MedicationTiming) bool { return m.Photosensitivity }); len(names) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%s can increase sun sensitivity. Use sunscreen and limit direct sun exposure.",
			strings.Join(names, ", ")))
	}

	return warnings
}

func namesWhere(meds []timing.MedicationTiming, pred func(timing.MedicationTiming) bool) []string {
	var names []string
	for _, m := range meds {
		if pred(m) {
			names = append(names, m.Name)
		}
	}
	return names
}

func buildGeneralInstructions(meds []timing.MedicationTiming) []string {
	instructions := make([]string, 0, len(generalTips)+2)
	instructions = append(instructions, generalTips...)

	if avoid := unionFoods(meds, func(m timing.MedicationTiming) []string { return m.AvoidFoods }); len(avoid) > 0 {
		instructions = append(instructions, fmt.Sprintf(
			"Avoid these foods while on your current medications: %s.", strings.Join(avoid, ", ")))
	}
	if include := unionFoods(meds, func(m timing.MedicationTiming) []string { return m.RequireFoods }); len(include) > 0 {
		instructions = append(instructions, fmt.Sprintf(
			"Include these foods in your diet: %s.", strings.Join(include, ", ")))
	}

	return instructions
}

// unionFoods deduplicates case-insensitively, keeping first-seen order.
func unionFoods(meds []timing.MedicationTiming, get func(timing.MedicationTiming) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range meds {
		for _, f := range get(m) {
			key := strings.ToLower(strings.TrimSpace(f))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

// buildMealPlan picks guidance text per meal from a small fixed template set.
// The first matching condition wins; there is no ranking beyond that.
func buildMealPlan(meds []timing.MedicationTiming) *MealPlan {
	var hasThyroid, hasIron, hasFatSoluble bool
	for _, m := range meds {
		if timing.IsThyroid(m.Name) {
			hasThyroid = true
		}
		if timing.IsIron(m.Name) {
			hasIron = true
		}
		if m.FatSoluble {
			hasFatSoluble = true
		}
	}

	plan := &MealPlan{}

	switch {
	case hasThyroid:
		plan.Breakfast = "Wait at least an hour after your thyroid medication, then have a breakfast without dairy, coffee, or calcium-fortified juice."
		plan.Snacks = append(plan.Snacks, "Keep calcium-rich snacks at least 4 hours away from your thyroid dose.")
	case hasIron:
		plan.Breakfast = "Pair your iron with a glass of orange juice and hold the dairy and coffee until mid-morning."
	case hasFatSoluble:
		plan.Breakfast = "Include some fat at breakfast (eggs, avocado, whole yogurt) to help absorption."
	default:
		plan.Breakfast = "A regular balanced breakfast works with your current medications."
	}

	plan.Lunch = "A regular balanced lunch works with your current medications."
	if hasIron && !hasThyroid {
		plan.Lunch = "If you skipped iron at breakfast, take it now with vitamin C rich food and no dairy."
	}

	switch {
	case hasFatSoluble:
		plan.Dinner = "Include a source of healthy fat at dinner so fat-soluble medications absorb properly."
	default:
		plan.Dinner = "A regular balanced dinner works with your current medications."
	}

	return plan
}
